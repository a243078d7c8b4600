package adapter

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/streampick/internal/log"
)

type startCall struct {
	name string
	args []string
}

func newTestLauncher(command string, available ...string) (*Launcher, *[]startCall) {
	l := NewLauncher(command, log.NullLogger())
	var calls []startCall
	l.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name, args})
		return nil
	}
	l.lookPath = func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
	return l, &calls
}

func TestLauncher_ConfiguredCommand(t *testing.T) {
	l, calls := newTestLauncher("firefox --new-tab")

	require.NoError(t, l.Open("https://picsum.photos/seed/1/300/450"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://picsum.photos/seed/1/300/450"}, (*calls)[0].args)
}

func TestLauncher_SystemDefault(t *testing.T) {
	paths := defaultOpeners[runtime.GOOS]
	if len(paths) == 0 {
		paths = defaultOpeners["linux"]
	}
	last := paths[len(paths)-1]
	l, calls := newTestLauncher("", last.command)

	require.NoError(t, l.Open("http://example.com/poster.jpg"))

	require.Len(t, *calls, 1)
	assert.Equal(t, last.command, (*calls)[0].name)
	assert.Equal(t, "http://example.com/poster.jpg", (*calls)[0].args[len((*calls)[0].args)-1])
}

func TestLauncher_NoOpener(t *testing.T) {
	l, calls := newTestLauncher("")

	assert.Error(t, l.Open("http://example.com/poster.jpg"))
	assert.Empty(t, *calls)
}

func TestLauncher_RejectsNonHTTP(t *testing.T) {
	l, calls := newTestLauncher("firefox")

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "not a url", "https://"} {
		err := l.Open(raw)
		assert.ErrorIs(t, err, ErrUnsupportedURL, raw)
	}
	assert.Empty(t, *calls)
}
