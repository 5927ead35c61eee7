package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/msomdec/inkpost/internal/domain"
)

const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error  string         `json:"error"`
	Issues []domain.Issue `json:"issues,omitempty"`
}

var errTrailingData = errors.New("request body must contain a single JSON value")

// readJSON decodes the request body into dst. A value of the wrong JSON type
// is reported as a *domain.ValidationError on that field. Anything after the
// first JSON value is rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		if dec.Decode(&struct{}{}) != io.EOF {
			return errTrailingData
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError("invalid_type",
			fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr), typeErr.Value),
			strings.Split(typeErr.Field, ".")...)
	}
	return err
}

func jsonKind(e *json.UnmarshalTypeError) string {
	t := e.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

// decode reads the body into dst, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := readJSON(w, r, dst)
	if err == nil {
		return true
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input", Issues: verr.Issues})
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
	return false
}
