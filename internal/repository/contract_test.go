package repository_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/metinatakli/movie-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newMovie(id, title, description string, releaseYear int) *domain.Movie {
	return &domain.Movie{
		ID:          id,
		Title:       title,
		Description: description,
		ReleaseYear: releaseYear,
	}
}

// runMovieRepositoryTests runs the repository contract against any backend.
// newRepo must return an empty repository on every call.
func runMovieRepositoryTests(t *testing.T, newRepo func(t *testing.T) domain.MovieRepository) {
	t.Helper()

	ctx := context.Background()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		movie := newMovie("first", "My movie", "My movie descriptions", 1991)

		require.NoError(t, repo.Create(ctx, movie))

		got, err := repo.Get(ctx, "first")
		require.NoError(t, err)
		assert.Equal(t, movie, got)
	})

	t.Run("Create overwrites same id", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Create(ctx, newMovie("first", "My movie", "My movie descriptions", 1991)))
		require.NoError(t, repo.Create(ctx, newMovie("first", "Other movie", "Other descriptions", 2001)))

		got, err := repo.Get(ctx, "first")
		require.NoError(t, err)
		assert.Equal(t, newMovie("first", "Other movie", "Other descriptions", 2001), got)

		movies, err := repo.GetByTitle(ctx, domain.NewTitleFilter("My movie"))
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.Get(ctx, "any")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
		assert.Nil(t, got)
	})

	t.Run("GetByTitle", func(t *testing.T) {
		seed := []*domain.Movie{
			newMovie("first", "My movie", "My movie descriptions", 1991),
			newMovie("second", "My second movie", "My second movie descriptions", 1991),
			newMovie("first_remake", "My movie", "My movie descriptions remake of the first movie from 2022", 2025),
		}

		tests := []struct {
			name   string
			seed   []*domain.Movie
			filter domain.TitleFilter
			want   []*domain.Movie
		}{
			{
				name:   "empty repository",
				filter: domain.NewTitleFilter("random title"),
				want:   []*domain.Movie{},
			},
			{
				name:   "no title matches",
				seed:   seed,
				filter: domain.NewTitleFilter("My"),
				want:   []*domain.Movie{},
			},
			{
				name:   "exact matches in insertion order",
				seed:   seed,
				filter: domain.NewTitleFilter("My movie"),
				want:   []*domain.Movie{seed[0], seed[2]},
			},
			{
				name:   "title match is case sensitive",
				seed:   seed,
				filter: domain.NewTitleFilter("my movie"),
				want:   []*domain.Movie{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newRepo(t)
				for _, movie := range tt.seed {
					require.NoError(t, repo.Create(ctx, movie))
				}

				got, err := repo.GetByTitle(ctx, tt.filter)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("GetByTitle pagination", func(t *testing.T) {
		repo := newRepo(t)

		movies := []*domain.Movie{
			newMovie("one", "My movie", "First of three", 1991),
			newMovie("other", "Another movie", "Not matching", 1992),
			newMovie("two", "My movie", "Second of three", 1993),
			newMovie("three", "My movie", "Third of three", 1994),
		}
		for _, movie := range movies {
			require.NoError(t, repo.Create(ctx, movie))
		}

		tests := []struct {
			name   string
			offset int
			limit  int
			want   []*domain.Movie
		}{
			{name: "second only", offset: 1, limit: 1, want: []*domain.Movie{movies[2]}},
			{name: "first two", offset: 0, limit: 2, want: []*domain.Movie{movies[0], movies[2]}},
			{name: "unbounded limit", offset: 1, limit: 0, want: []*domain.Movie{movies[2], movies[3]}},
			{name: "limit past the end", offset: 2, limit: 10, want: []*domain.Movie{movies[3]}},
			{name: "offset past the end", offset: 3, limit: 10, want: []*domain.Movie{}},
			{name: "max int limit", offset: 1, limit: math.MaxInt, want: []*domain.Movie{movies[2], movies[3]}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.GetByTitle(ctx, domain.TitleFilter{Title: "My movie", Offset: tt.offset, Limit: tt.limit})
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("Update every field", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newMovie("my-id-2", "My movie", "My description", 1991)))

		err := repo.Update(ctx, "my-id-2", domain.MoviePatch{
			Title:       ptr("updated-title"),
			Description: ptr("updated-description"),
			ReleaseYear: ptr(2099),
			Watched:     ptr(true),
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, "my-id-2")
		require.NoError(t, err)
		assert.Equal(t, &domain.Movie{
			ID:          "my-id-2",
			Title:       "updated-title",
			Description: "updated-description",
			ReleaseYear: 2099,
			Watched:     true,
		}, got)
	})

	t.Run("Update only watched", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newMovie("first", "My movie", "My movie descriptions", 1991)))

		require.NoError(t, repo.Update(ctx, "first", domain.MoviePatch{Watched: ptr(true)}))

		got, err := repo.Get(ctx, "first")
		require.NoError(t, err)

		want := newMovie("first", "My movie", "My movie descriptions", 1991)
		want.Watched = true
		assert.Equal(t, want, got)
	})

	t.Run("Update rejects id", func(t *testing.T) {
		repo := newRepo(t)
		original := newMovie("first", "My movie", "My movie descriptions", 1991)
		require.NoError(t, repo.Create(ctx, original))

		err := repo.Update(ctx, "first", domain.MoviePatch{ID: ptr("Not allowed"), Title: ptr("Update title")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMovieIDImmutable)

		var repoErr *domain.RepositoryError
		assert.True(t, errors.As(err, &repoErr))

		got, err := repo.Get(ctx, "first")
		require.NoError(t, err)
		assert.Equal(t, original, got)

		_, err = repo.Get(ctx, "Not allowed")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Update missing", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Update(ctx, "ghost", domain.MoviePatch{Title: ptr("Update title")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMovieNotFound)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("Delete existing", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newMovie("first one", "My movie", "My movie descriptions", 1991)))

		removed, err := repo.Delete(ctx, "first one")
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)

		_, err = repo.Get(ctx, "first one")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete missing", func(t *testing.T) {
		repo := newRepo(t)

		removed, err := repo.Delete(ctx, "nope")
		require.NoError(t, err)
		assert.EqualValues(t, 0, removed)
	})

	t.Run("GetByTitle results round trip through Get", func(t *testing.T) {
		repo := newRepo(t)
		for _, movie := range []*domain.Movie{
			newMovie("a", "Round trip", "First description", 1999),
			newMovie("b", "Round trip", "Second description", 2000),
		} {
			require.NoError(t, repo.Create(ctx, movie))
		}
		require.NoError(t, repo.Update(ctx, "b", domain.MoviePatch{Watched: ptr(true)}))

		movies, err := repo.GetByTitle(ctx, domain.NewTitleFilter("Round trip"))
		require.NoError(t, err)
		require.Len(t, movies, 2)

		for _, movie := range movies {
			got, err := repo.Get(ctx, movie.ID)
			require.NoError(t, err)
			assert.True(t, movie.Equal(got), "Get(%s) = %+v, want %+v", movie.ID, got, movie)
		}
	})
}
