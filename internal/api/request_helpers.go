package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// getUserFromContext extracts the authenticated user placed in the request
// context by the authentication middleware. The false return only happens if
// a handler is reachable without the middleware, which is a wiring bug.
func getUserFromContext(r *http.Request) (*domain.User, bool) {
	return shared.GetUser(r.Context())
}

// getPathID extracts a numeric ID from the URL path parameters.
// Returns a ValidationError if the parameter is missing or not a positive
// integer.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseListParams reads pagination and ordering from the query string.
// Absent parameters take their defaults. Explicit page values below 1 and
// limit values outside [1,100] are rejected as validation errors rather than
// silently clamped, so clients learn about their mistake. Unrecognized
// sortBy values fall back to the end-date default; order is ascending unless
// it is exactly "desc".
func parseListParams(r *http.Request) (store.ListParams, error) {
	params := store.DefaultListParams()
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, domain.NewValidationError("page", "must be a positive integer", domain.ErrValidation)
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > store.MaxLimit {
			return params, domain.NewValidationError("limit", "must be between 1 and 100", domain.ErrValidation)
		}
		params.Limit = limit
	}

	if raw := query.Get("sortBy"); raw != "" {
		params.SortBy = store.SortField(raw)
	}
	if raw := query.Get("order"); raw != "" {
		params.Order = store.SortOrder(raw)
	}

	// Unknown sort field/order values resolve to the defaults.
	return params.Normalize(), nil
}
