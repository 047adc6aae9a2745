package app

import (
	"log/slog"
	"net/http"
)

type contextKey string

const (
	contextKeyLogger = contextKey("logger")
)

func (c contextKey) String() string {
	return string(c)
}

// contextGetLogger returns the request logger, falling back to the
// application logger for requests that bypassed logRequest.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(contextKeyLogger).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
