package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/metinatakli/movie-tracker/internal/jsonutil"
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

// readString returns a pointer to the query value for key, or nil when the
// key is absent.
func (app *Application) readString(qs url.Values, key string) *string {
	if !qs.Has(key) {
		return nil
	}

	s := qs.Get(key)
	return &s
}

func (app *Application) readInt(qs url.Values, key string) (*int, error) {
	if !qs.Has(key) {
		return nil, nil
	}

	i, err := strconv.Atoi(qs.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer value", key)
	}

	return &i, nil
}
