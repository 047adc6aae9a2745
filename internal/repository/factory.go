package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/movie-tracker/internal/domain"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// NewMovieRepository creates a movie repository for the named backend.
//
// Supported backends:
//
//	"mongo"  - MongoDB collection in db
//	"memory" - in-memory, ephemeral
//
// For mongo the indexes are created before the repository is returned.
func NewMovieRepository(ctx context.Context, backend string, db *mongo.Database) (domain.MovieRepository, error) {
	switch backend {
	case BackendMongo:
		if db == nil {
			return nil, errors.New("mongo backend requires a database")
		}

		repo := NewMongoMovieRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}

		return repo, nil
	case BackendMemory:
		return NewMemoryMovieRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: mongo, memory)", backend)
	}
}
