package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"todo-lists-api/internal/model"
)

type ListService interface {
	List(ctx context.Context) ([]model.ListSummary, error)
	Get(ctx context.Context, id string) (model.TodoList, error)
	Create(ctx context.Context, in model.ListInput) (model.TodoList, error)
	Update(ctx context.Context, id string, in model.ListInput) (model.TodoList, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	service ListService
	logger  *slog.Logger
	router  *mux.Router
	handler http.Handler
}

func NewServer(service ListService, store StorePinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		service: service,
		logger:  logger,
		router:  mux.NewRouter(),
	}

	srv.router.HandleFunc("/healthz", srv.handleHealth).Methods(http.MethodGet)
	srv.router.HandleFunc("/readyz", ReadyzHandler(store, logger)).Methods(http.MethodGet)

	srv.router.HandleFunc("/api/todo-lists", srv.handleListLists).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/todo-lists", srv.handleCreateList).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/todo-lists/{id}", srv.handleGetList).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/todo-lists/{id}", srv.handleUpdateList).Methods(http.MethodPut)
	srv.router.HandleFunc("/api/todo-lists/{id}", srv.handleDeleteList).Methods(http.MethodDelete)

	srv.handler = WithRequestID(Logging(logger)(srv.router))
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
