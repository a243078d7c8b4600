package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/domain"
	"github.com/mmcdole/streampick/internal/log"
	"github.com/mmcdole/streampick/internal/recommend"
)

func newServer(t *testing.T, status int, body string) *controller.Controller {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := recommend.NewClient(srv.URL, 0, log.NullLogger())
	return controller.New(client, nil, log.NullLogger())
}

func TestRunOnce_Success(t *testing.T) {
	ctrl := newServer(t, http.StatusOK, `{"query": "Toy Story (1995)", "recommendations": [
		{"title": "Toy Story 2 (1999)", "poster": "https://picsum.photos/seed/3114/300/450", "score": 87.5}
	]}`)

	var out bytes.Buffer
	require.NoError(t, runOnce(ctrl, "Toy Story", 6, &out))

	assert.Contains(t, out.String(), "Toy Story (1995)\nposter: https://picsum.photos/seed/3114/300/450")
	assert.Contains(t, out.String(), "Because you liked Toy Story (1995)")
	assert.Contains(t, out.String(), "Toy Story 2 (1999)  [Match: 87.50%]")
}

func TestRunOnce_Failure(t *testing.T) {
	ctrl := newServer(t, http.StatusNotFound, `{"detail": "movie not found"}`)

	var out bytes.Buffer
	err := runOnce(ctrl, "Nope", 6, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "movie not found")
	assert.Contains(t, out.String(), "API error: movie not found")
}

func TestRunOnce_BlankTitle(t *testing.T) {
	ctrl := newServer(t, http.StatusOK, `{}`)

	var out bytes.Buffer
	err := runOnce(ctrl, " ", 6, &out)

	assert.ErrorIs(t, err, domain.ErrBlankTitle)
	assert.Empty(t, out.String())
}
