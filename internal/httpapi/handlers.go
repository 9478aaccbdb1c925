package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"todo-lists-api/internal/model"
	"todo-lists-api/internal/todolist"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list todo lists", err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "get todo list", err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req model.ListInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	created, err := s.service.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "create todo list", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.ListInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	updated, err := s.service.Update(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, "update todo list", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, "delete todo list", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *todolist.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr.Problems)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "todo list not found")
	default:
		s.internalError(w, r, op, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.ErrorContext(r.Context(), op+" failed",
		"rid", RequestIDFromContext(r.Context()),
		"err", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
