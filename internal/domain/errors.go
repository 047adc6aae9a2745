package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidMovie     = errors.New("invalid movie")
	ErrMovieNotFound    = errors.New("not found")
	ErrMovieIDImmutable = errors.New("can't update movie id")
)

type FieldViolation struct {
	Field string
	Rule  string
	Param string
	Issue string
}

// ValidationError is returned when a Movie breaks one or more entity rules.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("%s %s", v.Field, v.Issue)
	}

	return fmt.Sprintf("%s: %s", ErrInvalidMovie, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMovie
}

// RepositoryError reports a domain-level repository failure for one movie.
type RepositoryError struct {
	MovieID string
	Err     error
}

func NewNotFoundError(id string) *RepositoryError {
	return &RepositoryError{MovieID: id, Err: ErrMovieNotFound}
}

func NewImmutableIDError(id string) *RepositoryError {
	return &RepositoryError{MovieID: id, Err: ErrMovieIDImmutable}
}

func (e *RepositoryError) Error() string {
	if errors.Is(e.Err, ErrMovieNotFound) {
		return fmt.Sprintf("movie: %s %s", e.MovieID, e.Err)
	}

	return e.Err.Error()
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
