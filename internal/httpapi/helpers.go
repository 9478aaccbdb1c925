package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"todo-lists-api/internal/todolist"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.New("payload too large")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON: multiple JSON values")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type validationResponse struct {
	Errors []todolist.FieldError `json:"errors"`
}

func writeValidation(w http.ResponseWriter, problems []todolist.FieldError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Errors: problems})
}

func writeBadBody(w http.ResponseWriter, err error) {
	writeValidation(w, []todolist.FieldError{{Message: err.Error(), Field: "body"}})
}
