package recommend

// Wire types for the recommendation service

// RecommendResponse is the body of a successful /recommend call
type RecommendResponse struct {
	Query           *string             `json:"query"`
	Recommendations []RecommendationDTO `json:"recommendations"`
}

// RecommendationDTO is one ranked entry
type RecommendationDTO struct {
	MovieID int     `json:"movieId"`
	Title   string  `json:"title"`
	Poster  string  `json:"poster"`
	Score   float64 `json:"score"`
}

// ErrorResponse is the body of a non-2xx response.
// Detail is usually a string; validation errors carry a list of objects.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// HealthResponse is the body of /health
type HealthResponse struct {
	Status string `json:"status"`
}
