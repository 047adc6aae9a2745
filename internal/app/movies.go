package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-tracker/api"
	"github.com/metinatakli/movie-tracker/internal/domain"
)

const MovieUpdatedMessage = "movie updated"

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := domain.NewMovie(uuid.NewString(), input.Title, input.Description, input.ReleaseYear, input.Watched)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		logger.Error("failed to create movie", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("movie created", "movie_id", movie.ID)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%s", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, api.CreateMovieResponse{Id: movie.ID}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieId")

	movie, err := app.movieRepo.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.movieNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMoviesByTitle(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params := api.GetMoviesParams{
		Title: app.readString(qs, "title"),
	}

	var err error

	params.Offset, err = app.readInt(qs, "offset")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params.Limit, err = app.readInt(qs, "limit")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, err := app.movieRepo.GetByTitle(r.Context(), toTitleFilter(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponses(movies), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	id := chi.URLParam(r, "movieId")

	var input api.UpdateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Update(r.Context(), id, toMoviePatch(input))
	if err != nil {
		var repoErr *domain.RepositoryError

		switch {
		case errors.As(err, &repoErr):
			logger.Warn("movie update rejected", "movie_id", id, "reason", repoErr.Err)
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: MovieUpdatedMessage}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	id := chi.URLParam(r, "movieId")

	removed, err := app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if removed == 0 {
		logger.Warn("delete of unknown movie", "movie_id", id)
		app.badRequestResponse(w, r, domain.NewNotFoundError(id))
		return
	}

	logger.Info("movie deleted", "movie_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func toTitleFilter(params api.GetMoviesParams) domain.TitleFilter {
	filter := domain.NewTitleFilter(*params.Title)

	if params.Offset != nil {
		filter.Offset = *params.Offset
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}

	return filter
}

func toMoviePatch(input api.UpdateMovieRequest) domain.MoviePatch {
	patch := domain.MoviePatch{
		ID:          rawMovieID(input.Id),
		Title:       input.Title,
		Description: input.Description,
		ReleaseYear: input.ReleaseYear,
		Watched:     input.Watched,
	}

	if patch.ID == nil {
		patch.ID = rawMovieID(input.MovieId)
	}

	return patch
}

// rawMovieID reports a present id key as non-nil whatever its value; a JSON
// null becomes the empty string.
func rawMovieID(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		id = string(raw)
	}

	return &id
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	if movie == nil {
		return api.MovieResponse{}
	}

	return api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseYear: movie.ReleaseYear,
		Watched:     movie.Watched,
	}
}

func toMovieResponses(movies []*domain.Movie) []api.MovieResponse {
	responses := make([]api.MovieResponse, len(movies))

	for i, movie := range movies {
		responses[i] = toMovieResponse(movie)
	}

	return responses
}
