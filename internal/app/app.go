package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-tracker/internal/domain"
	"github.com/metinatakli/movie-tracker/internal/repository"
	appvalidator "github.com/metinatakli/movie-tracker/internal/validator"
	"github.com/metinatakli/movie-tracker/internal/vcs"
	"github.com/riandyrn/otelchi"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const serviceName = "movie-tracker-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate
	movieRepo domain.MovieRepository
}

type Config struct {
	Port             int
	Env              string
	Store            string
	Mongo            MongoConfig
	OtelCollectorUrl string
}

type MongoConfig struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize int
	MaxIdleTime time.Duration
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	movieRepo domain.MovieRepository,
) *Application {
	return &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
		movieRepo: movieRepo,
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.Store, "store", repository.BackendMongo, "Movie store backend (mongo|memory)")

	flag.StringVar(&cfg.Mongo.URI, "mongo-uri", env("MOVIES_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	flag.StringVar(&cfg.Mongo.Database, "mongo-database", env("MOVIES_MONGO_DATABASE", "movie_tracker_db"), "MongoDB database name")
	flag.DurationVar(&cfg.Mongo.Timeout, "mongo-timeout", 5*time.Second, "MongoDB per-operation and connect timeout")
	flag.IntVar(&cfg.Mongo.MaxPoolSize, "mongo-max-pool-size", 25, "MongoDB max pooled connections")
	flag.DurationVar(&cfg.Mongo.MaxIdleTime, "mongo-max-idle-time", 15*time.Minute, "MongoDB max idle time for connections")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := NewApp(cfg, logger, appvalidator.NewValidator(), nil)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer shutdownTelemetry(context.Background())

	var db *mongo.Database

	if cfg.Store == repository.BackendMongo {
		client, err := NewMongoClient(cfg, NewMongoCommandMonitor(app.logger))
		if err != nil {
			app.logger.Error("failed to connect to mongo", "error", err)
			return err
		}
		defer client.Disconnect(context.Background())

		db = client.Database(cfg.Mongo.Database)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	movieRepo, err := repository.NewMovieRepository(ctx, cfg.Store, db)
	if err != nil {
		app.logger.Error("failed to create movie repository", "store", cfg.Store, "error", err)
		return err
	}

	app.movieRepo = movieRepo

	return app.run()
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "store", app.config.Store)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	if app.config.OtelCollectorUrl != "" {
		r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	}
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Post("/", app.CreateMovie)
		r.Get("/", app.GetMoviesByTitle)
		r.Get("/{movieId}", app.GetMovie)
		r.Patch("/{movieId}", app.UpdateMovie)
		r.Delete("/{movieId}", app.DeleteMovie)
	})

	return r
}
