package recommend

import (
	"github.com/goccy/go-json"

	"github.com/mmcdole/streampick/internal/domain"
)

// genericErrorMessage is reported when an error body carries no detail
const genericErrorMessage = "API error"

// MapItems converts wire recommendations to domain items, preserving order
func MapItems(dtos []RecommendationDTO) []domain.RecommendationItem {
	items := make([]domain.RecommendationItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, domain.RecommendationItem{
			MovieID:   d.MovieID,
			Title:     d.Title,
			PosterURL: d.Poster,
			Score:     d.Score,
		})
	}
	return items
}

// MapResponse folds a successful payload into a Result.
// The service may rewrite the query (e.g. to the matched canonical title);
// when it omits it, the requested title is used.
func MapResponse(resp RecommendResponse, title string) domain.Result {
	if len(resp.Recommendations) == 0 {
		return domain.Empty(title)
	}
	query := title
	if resp.Query != nil && *resp.Query != "" {
		query = *resp.Query
	}
	return domain.Success(query, MapItems(resp.Recommendations))
}

// MapError folds an error payload into a Failure
func MapError(resp ErrorResponse) domain.Result {
	switch detail := resp.Detail.(type) {
	case nil:
		return domain.Failure(genericErrorMessage)
	case string:
		if detail == "" {
			return domain.Failure(genericErrorMessage)
		}
		return domain.Failure(detail)
	default:
		raw, err := json.Marshal(detail)
		if err != nil {
			return domain.Failure(genericErrorMessage)
		}
		return domain.Failure(string(raw))
	}
}
