package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"envedit/internal/editor"
	"envedit/internal/logger"
	"envedit/internal/model"
	"envedit/internal/profile"
)

//go:embed static/*
var staticFS embed.FS

// DefaultPort is used when no port is given.
const DefaultPort = "8080"

// Server serves the variable browser on localhost.
type Server struct {
	editor *editor.Editor
	addr   string
}

// NewServer returns a Server bound to localhost:port.
func NewServer(ed *editor.Editor, port string) *Server {
	if port == "" {
		port = DefaultPort
	}
	return &Server{editor: ed, addr: "localhost:" + port}
}

// Addr is the listen address.
func (s *Server) Addr() string { return s.addr }

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	subFS, _ := fs.Sub(staticFS, "static")
	r.Handle("/*", http.FileServer(http.FS(subFS)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/vars", s.handleQuery)
		r.Post("/vars", s.handleAdd)
		r.Get("/vars/{key}/definitions", s.handleDefinitions)
		r.Get("/profile", s.handleProfile)
		r.Get("/version", handleVersion)
	})
	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "web server listening", "url", "http://"+s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type queryResponse struct {
	Profile string           `json:"profile"`
	Vars    []model.Variable `json:"vars"`
}

type addRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type messageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path, err := s.editor.ProfilePath(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	vars, err := s.editor.Variables(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Profile: path, Vars: vars})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Error: "invalid request body"})
		return
	}
	msg, err := s.editor.AddVariable(r.Context(), req.Key, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.editor.Definitions(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	loc, err := s.editor.ShellLocation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"shell_profile": loc})
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": model.Version})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, profile.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, messageResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
