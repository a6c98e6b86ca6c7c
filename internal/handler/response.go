package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"venuestore/internal/domain"
	"venuestore/internal/logger"
)

// maxBodyBytes bounds JSON and fixture request bodies.
const maxBodyBytes = 4 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	TraceID   string    `json:"trace_id"`
	Timestamp time.Time `json:"timestamp"`
}

// errorStatus maps a store or service error to a status code and title
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusUnprocessableEntity, "Invalid reference"
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict, "Duplicate name"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("failed to encode JSON", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, title, details string, statusCode int) {
	writeJSON(w, log, ErrorResponse{
		Error:     title,
		Details:   details,
		TraceID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}, statusCode)
}

// writeServiceError renders err with its mapped status. Internal errors are
// logged under the trace id and their text is not sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	status, title := errorStatus(err)
	resp := ErrorResponse{
		Error:     title,
		Details:   err.Error(),
		TraceID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			"trace_id", resp.TraceID,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		resp.Details = "see server log for trace " + resp.TraceID
	}
	writeJSON(w, log, resp, status)
}

// decodeBody decodes a JSON request body into v
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q is not a valid identifier: %w", name, raw, domain.ErrInvalidInput)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query %s %q is not a number: %w", name, raw, domain.ErrInvalidInput)
	}
	return n, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(r *http.Request, name string) (domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(raw)
}

// pageRequest reads the page and size query parameters
func pageRequest(r *http.Request) (domain.PageRequest, error) {
	index, err := queryInt(r, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := queryInt(r, "size")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Index: index, Size: size}, nil
}
