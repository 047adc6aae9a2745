package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/movie-tracker/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	MoviesCollection = "movies"

	fieldMovieID     = "movie_id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldReleaseYear = "release_year"
	fieldWatched     = "watched"
)

// movieDocument is the stored shape of a movie. The ObjectID is assigned by
// the server on first insert and doubles as the insertion-order sort key.
type movieDocument struct {
	ObjectID    bson.ObjectID `bson:"_id,omitempty"`
	MovieID     string        `bson:"movie_id"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	ReleaseYear int           `bson:"release_year"`
	Watched     bool          `bson:"watched"`
}

func toMovieDocument(movie *domain.Movie) movieDocument {
	return movieDocument{
		MovieID:     movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseYear: movie.ReleaseYear,
		Watched:     movie.Watched,
	}
}

func (d movieDocument) toMovie() *domain.Movie {
	return &domain.Movie{
		ID:          d.MovieID,
		Title:       d.Title,
		Description: d.Description,
		ReleaseYear: d.ReleaseYear,
		Watched:     d.Watched,
	}
}

type MongoMovieRepository struct {
	movies *mongo.Collection
}

func NewMongoMovieRepository(db *mongo.Database) *MongoMovieRepository {
	return &MongoMovieRepository{
		movies: db.Collection(MoviesCollection),
	}
}

// EnsureIndexes creates the unique movie id index and the title lookup index.
// It is idempotent.
func (m *MongoMovieRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldMovieID, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("movie_id_unique"),
		},
		{
			Keys:    bson.D{{Key: fieldTitle, Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("title_insertion"),
		},
	}

	_, err := m.movies.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("create movie indexes: %w", err)
	}

	return nil
}

func (m *MongoMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	filter := bson.D{{Key: fieldMovieID, Value: movie.ID}}
	opts := options.Replace().SetUpsert(true)

	_, err := m.movies.ReplaceOne(ctx, filter, toMovieDocument(movie), opts)
	if err != nil {
		return fmt.Errorf("insert movie %s: %w", movie.ID, err)
	}

	return nil
}

func (m *MongoMovieRepository) Get(ctx context.Context, id string) (*domain.Movie, error) {
	var doc movieDocument

	err := m.movies.FindOne(ctx, bson.D{{Key: fieldMovieID, Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}

	return doc.toMovie(), nil
}

func (m *MongoMovieRepository) GetByTitle(ctx context.Context, filter domain.TitleFilter) ([]*domain.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(max(filter.Offset, 0))).
		SetLimit(int64(max(filter.Limit, 0)))

	cursor, err := m.movies.Find(ctx, bson.D{{Key: fieldTitle, Value: filter.Title}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find movies by title: %w", err)
	}
	defer cursor.Close(ctx)

	movies := []*domain.Movie{}

	for cursor.Next(ctx) {
		var doc movieDocument

		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode movie: %w", err)
		}

		movies = append(movies, doc.toMovie())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies by title: %w", err)
	}

	return movies, nil
}

// Update sets the present patch fields. A result that modified no document is
// reported as not found, which includes a patch whose values already match
// the stored ones: the server does not tell these cases apart.
func (m *MongoMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) error {
	if patch.ID != nil {
		return domain.NewImmutableIDError(id)
	}

	filter := bson.D{{Key: fieldMovieID, Value: id}}

	if patch.IsEmpty() {
		count, err := m.movies.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("count movie %s: %w", id, err)
		}
		if count == 0 {
			return domain.NewNotFoundError(id)
		}

		return nil
	}

	result, err := m.movies.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: toSetDocument(patch)}})
	if err != nil {
		return fmt.Errorf("update movie %s: %w", id, err)
	}

	if result.ModifiedCount == 0 {
		return domain.NewNotFoundError(id)
	}

	return nil
}

func toSetDocument(patch domain.MoviePatch) bson.D {
	set := bson.D{}

	if patch.Title != nil {
		set = append(set, bson.E{Key: fieldTitle, Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: fieldDescription, Value: *patch.Description})
	}
	if patch.ReleaseYear != nil {
		set = append(set, bson.E{Key: fieldReleaseYear, Value: *patch.ReleaseYear})
	}
	if patch.Watched != nil {
		set = append(set, bson.E{Key: fieldWatched, Value: *patch.Watched})
	}

	return set
}

func (m *MongoMovieRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := m.movies.DeleteOne(ctx, bson.D{{Key: fieldMovieID, Value: id}})
	if err != nil {
		return 0, fmt.Errorf("delete movie %s: %w", id, err)
	}

	return result.DeletedCount, nil
}
