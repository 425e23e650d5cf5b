// Package server exposes the player over HTTP. The page it serves is a
// thin view: all timing and render-state decisions happen server-side,
// and the page applies the state JSON it gets back from the API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clipcast/config"
	"clipcast/player"
	"clipcast/project"
)

//go:embed web/index.html
var webFS embed.FS

// Server hosts the player page, the state API and the static assets.
type Server struct {
	cfg      config.Config
	log      *slog.Logger
	registry project.Registry

	mu      sync.Mutex
	session *Session

	listener net.Listener
	httpSrv  *http.Server
}

// New builds a server around an already-loaded project registry.
func New(cfg config.Config, reg project.Registry, log *slog.Logger) *Server {
	s := &Server{cfg: cfg, log: log, registry: reg}
	s.httpSrv = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/project/{id}", s.handleProject)
		r.Post("/load", s.handleLoad)
		r.Post("/seek", s.handleSeek)
		r.Post("/clip", s.handleClip)
		r.Post("/advance", s.handleAdvance)
		r.Post("/play", s.handlePlay)
		r.Get("/state", s.handleState)
	})

	static := http.FileServer(http.Dir(s.cfg.AssetsDir))
	r.Handle("/audio/*", static)
	r.Handle("/footage/*", static)
	r.Handle("/doc/*", static)

	return r
}

// Listen binds the server to a port, walking forward from the preferred
// one when it is already taken. It returns the bound port.
func (s *Server) Listen() (int, error) {
	for i := 0; i < s.cfg.PortAttempts; i++ {
		port := s.cfg.Port + i
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			s.listener = ln
			if i > 0 {
				s.log.Info("preferred port taken, moved up", "port", port)
			}
			return port, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return 0, fmt.Errorf("listen on port %d: %w", port, err)
		}
	}
	return 0, fmt.Errorf("no free port in %d..%d",
		s.cfg.Port, s.cfg.Port+s.cfg.PortAttempts-1)
}

// Serve runs the HTTP server on the listener from Listen. It blocks
// until Shutdown or a listener error.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("serve called before listen")
	}
	err := s.httpSrv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Load replaces the active session with a fresh one for the named
// project.
func (s *Server) Load(id string, mode player.Mode) (*Session, error) {
	proj, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown project %q", id)
	}
	sess := NewSession(id, proj, s.cfg.AssetsDir, mode, s.log)

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.log.Info("project loaded", "project", id, "clips", len(proj.Clips), "mode", mode)
	return sess, nil
}

func (s *Server) activeSession() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.session != nil
}
