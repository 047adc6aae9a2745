package mocks

import (
	"context"

	"github.com/metinatakli/movie-tracker/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc     func(ctx context.Context, movie *domain.Movie) error
	GetFunc        func(ctx context.Context, id string) (*domain.Movie, error)
	GetByTitleFunc func(ctx context.Context, filter domain.TitleFilter) ([]*domain.Movie, error)
	UpdateFunc     func(ctx context.Context, id string, patch domain.MoviePatch) error
	DeleteFunc     func(ctx context.Context, id string) (int64, error)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockMovieRepo) GetByTitle(ctx context.Context, filter domain.TitleFilter) ([]*domain.Movie, error) {
	return m.GetByTitleFunc(ctx, filter)
}

func (m *MockMovieRepo) Update(ctx context.Context, id string, patch domain.MoviePatch) error {
	return m.UpdateFunc(ctx, id, patch)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id string) (int64, error) {
	return m.DeleteFunc(ctx, id)
}
