package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/max-niederman/beryl/internal/runtime"
	"github.com/max-niederman/beryl/internal/server/http/controllers"
	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
	logpkg "github.com/max-niederman/beryl/pkg/log"
)

// Server is the REST gateway over the mint service.
type Server struct {
	rt      *runtime.Runtime
	svc     *mintsvc.Service
	ownsSvc bool
	srv     *http.Server
	lis     net.Listener
	logger  logpkg.Logger
}

// New builds a server that owns its own mint service. Close releases it.
func New(rt *runtime.Runtime) (*Server, error) {
	svc, err := mintsvc.New(rt)
	if err != nil {
		return nil, err
	}
	s := NewWithService(rt, svc, nil)
	s.ownsSvc = true
	return s, nil
}

// NewWithService builds a server over a shared mint service instance.
func NewWithService(rt *runtime.Runtime, svc *mintsvc.Service, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("http"))
	}
	mux := http.NewServeMux()
	controllers.NewControllerRegistry(rt, svc).RegisterAllRoutes(mux)
	// Cleartext HTTP/2 lets clients multiplex many small mint requests over
	// one connection without TLS setup.
	handler := h2c.NewHandler(cors(mux), &http2.Server{})
	return &Server{
		rt:     rt,
		svc:    svc,
		srv:    &http.Server{Handler: handler},
		logger: logger,
	}
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http server listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the listener and, when the server owns the mint service,
// closes it too.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
	if s.ownsSvc {
		_ = s.svc.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
