// Package api holds the JSON request and response shapes of the movie HTTP API.
package api

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	StoreBackend string `json:"storeBackend"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type CreateMovieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Watched     bool   `json:"watched"`
}

type CreateMovieResponse struct {
	Id string `json:"id"`
}

// UpdateMovieRequest is a partial update. Id and MovieId are kept raw so that
// the presence of either key, even with a null value, can be rejected.
type UpdateMovieRequest struct {
	Id          json.RawMessage `json:"id"`
	MovieId     json.RawMessage `json:"movie_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ReleaseYear *int    `json:"release_year"`
	Watched     *bool   `json:"watched"`
}

type MovieResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Watched     bool   `json:"watched"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type GetMoviesParams struct {
	Title  *string `json:"title" validate:"required,notblank"`
	Offset *int    `json:"offset" validate:"omitempty,min=0"`
	Limit  *int    `json:"limit" validate:"omitempty,min=0,max=1000"`
}
