package app

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// NewMongoClient connects to MongoDB and pings the primary. Every operation
// issued through the client is bounded by cfg.Mongo.Timeout unless the
// caller's context expires first.
func NewMongoClient(cfg Config, monitor *event.CommandMonitor) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetTimeout(cfg.Mongo.Timeout).
		SetConnectTimeout(cfg.Mongo.Timeout).
		SetMaxPoolSize(uint64(cfg.Mongo.MaxPoolSize)).
		SetMaxConnIdleTime(cfg.Mongo.MaxIdleTime)

	if monitor != nil {
		opts.SetMonitor(monitor)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// NewMongoCommandMonitor records command durations on the global meter
// provider and logs failed commands at debug level.
func NewMongoCommandMonitor(logger *slog.Logger) *event.CommandMonitor {
	meter := otel.Meter(serviceName)

	duration, err := meter.Float64Histogram(
		"db.client.operation.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of MongoDB commands"),
	)
	if err != nil {
		logger.Warn("failed to create mongo duration histogram", "error", err)
	}

	record := func(ctx context.Context, e event.CommandFinishedEvent, failed bool) {
		if duration == nil {
			return
		}

		duration.Record(ctx, e.Duration.Seconds(), metric.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.namespace", e.DatabaseName),
			attribute.String("db.operation.name", e.CommandName),
			attribute.Bool("error", failed),
		))
	}

	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			record(ctx, e.CommandFinishedEvent, false)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			record(ctx, e.CommandFinishedEvent, true)

			logger.Debug("mongo command failed",
				"command", e.CommandName,
				"database", e.DatabaseName,
				"duration", e.Duration,
				"error", e.Failure,
			)
		},
	}
}
