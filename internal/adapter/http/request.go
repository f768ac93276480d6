package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/errs"
)

// pathID parses the {id} route parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.Validationf("invalid id: %s", chi.URLParam(r, "id"))
	}
	return id, nil
}

// decodeBody unmarshals the request body into v, treating malformed JSON as
// a validation error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Validationf("invalid JSON body: %v", err)
	}
	return nil
}

// timeRange reads the optional since/until query parameters. Both must be
// present to form a range; a lone parameter is a caller mistake.
func timeRange(r *http.Request) (*domain.TimeRange, error) {
	since, until := r.URL.Query().Get("since"), r.URL.Query().Get("until")
	if since == "" && until == "" {
		return nil, nil
	}
	if since == "" || until == "" {
		return nil, errs.Validationf("since and until must be provided together")
	}
	return &domain.TimeRange{Since: since, Until: until}, nil
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or unparsable.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
