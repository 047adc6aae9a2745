package domain

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	appvalidator "github.com/metinatakli/movie-tracker/internal/validator"
)

const (
	DefaultTitleOffset = 0
	DefaultTitleLimit  = 1000
	MinReleaseYear     = 1900
)

var validate = appvalidator.NewValidator()

type Movie struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"min=4"`
	Description string `json:"description" validate:"min=4"`
	ReleaseYear int    `json:"release_year" validate:"gt=1900"`
	Watched     bool   `json:"watched"`
}

// NewMovie builds a Movie and checks it against the entity rules. It is the
// only place validation runs; updates assign fields without re-validating.
func NewMovie(id, title, description string, releaseYear int, watched bool) (*Movie, error) {
	movie := &Movie{
		ID:          id,
		Title:       title,
		Description: description,
		ReleaseYear: releaseYear,
		Watched:     watched,
	}

	if err := movie.Validate(); err != nil {
		return nil, err
	}

	return movie, nil
}

// Validate returns a *ValidationError listing every broken rule, or nil.
func (m *Movie) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Violations = append(verr.Violations, FieldViolation{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Issue: appvalidator.ValidationMessage(fe),
		})
	}

	return verr
}

func (m *Movie) Equal(other *Movie) bool {
	if m == nil || other == nil {
		return m == other
	}

	return *m == *other
}

// MoviePatch is a partial update. Nil fields are left untouched. ID is set
// only to record that the caller tried to change the identifier, which
// repositories reject.
type MoviePatch struct {
	ID          *string
	Title       *string
	Description *string
	ReleaseYear *int
	Watched     *bool
}

func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.ReleaseYear == nil && p.Watched == nil
}

// Apply assigns the present fields onto movie. The id is never touched.
func (p MoviePatch) Apply(movie *Movie) {
	if p.Title != nil {
		movie.Title = *p.Title
	}
	if p.Description != nil {
		movie.Description = *p.Description
	}
	if p.ReleaseYear != nil {
		movie.ReleaseYear = *p.ReleaseYear
	}
	if p.Watched != nil {
		movie.Watched = *p.Watched
	}
}

// TitleFilter selects movies with an exact title, restricted to
// [Offset, Offset+Limit) of the matches. A zero Limit means no limit.
type TitleFilter struct {
	Title  string
	Offset int
	Limit  int
}

func NewTitleFilter(title string) TitleFilter {
	return TitleFilter{
		Title:  title,
		Offset: DefaultTitleOffset,
		Limit:  DefaultTitleLimit,
	}
}

// Window returns the bounds of the [Offset, Offset+Limit) slice over n matches.
func (f TitleFilter) Window(n int) (int, int) {
	start := min(max(f.Offset, 0), n)
	if f.Limit <= 0 {
		return start, n
	}

	return start, start + min(f.Limit, n-start)
}

type MovieRepository interface {
	// Create stores movie keyed by its id, replacing any record with the same id.
	Create(ctx context.Context, movie *Movie) error
	// Get returns ErrRecordNotFound when no movie has the id.
	Get(ctx context.Context, id string) (*Movie, error)
	// GetByTitle returns an empty slice when nothing matches.
	GetByTitle(ctx context.Context, filter TitleFilter) ([]*Movie, error)
	Update(ctx context.Context, id string, patch MoviePatch) error
	// Delete reports how many records were removed.
	Delete(ctx context.Context, id string) (int64, error)
}
