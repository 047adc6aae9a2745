package repository

import (
	"context"
	"sync"

	"github.com/metinatakli/movie-tracker/internal/domain"
)

// MemoryMovieRepository keeps movies in a map and remembers insertion order
// so title lookups page the same way the document store does. Safe for
// concurrent use. Data is lost on restart.
type MemoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]domain.Movie
	order  []string
}

func NewMemoryMovieRepository() *MemoryMovieRepository {
	return &MemoryMovieRepository{
		movies: make(map[string]domain.Movie),
	}
}

func (m *MemoryMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.movies[movie.ID]; !exists {
		m.order = append(m.order, movie.ID)
	}
	m.movies[movie.ID] = *movie

	return nil
}

func (m *MemoryMovieRepository) Get(ctx context.Context, id string) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &movie, nil
}

func (m *MemoryMovieRepository) GetByTitle(ctx context.Context, filter domain.TitleFilter) ([]*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := []*domain.Movie{}
	for _, id := range m.order {
		movie := m.movies[id]
		if movie.Title == filter.Title {
			matches = append(matches, &movie)
		}
	}

	start, end := filter.Window(len(matches))

	return matches[start:end], nil
}

func (m *MemoryMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) error {
	if patch.ID != nil {
		return domain.NewImmutableIDError(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	movie, ok := m.movies[id]
	if !ok {
		return domain.NewNotFoundError(id)
	}

	patch.Apply(&movie)
	m.movies[id] = movie

	return nil
}

func (m *MemoryMovieRepository) Delete(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.movies[id]; !ok {
		return 0, nil
	}

	delete(m.movies, id)
	for i, orderedID := range m.order {
		if orderedID == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return 1, nil
}
