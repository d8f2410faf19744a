// Package server exposes a grid document over HTTP.
//
// The server owns a single [flow.Flow] and serializes every call into it.
// Viewport queries and rendered tiles are cached per layout revision; any
// change that invalidates the layout (an expansion flag or the container
// width) starts a new revision.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shannonchou/SquareFlowLayout/pkg/cache"
	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/flow"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// Server serves one grid document.
type Server struct {
	mu     sync.Mutex
	grid   *grid
	caches *cache.Manager
	logger *log.Logger

	corsOrigins []string
	tileScale   float64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and layout diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for doc. The server takes ownership of doc.
func New(doc *config.Document, opts ...Option) (*Server, error) {
	s := &Server{
		logger:      log.Default(),
		corsOrigins: doc.Server.CORSOrigins,
		tileScale:   doc.Server.TileScale,
	}
	for _, opt := range opts {
		opt(s)
	}

	caches, err := cache.NewManager(cache.ManagerConfig{
		TileCacheSizeMB: doc.Cache.TileSizeMB,
		TileTTL:         time.Duration(doc.Cache.TileTTLMinutes) * time.Minute,
		QueryCacheSize:  doc.Cache.QueryCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("init caches: %w", err)
	}
	s.caches = caches
	s.grid = newGrid(doc, flow.WithLogger(s.logger))
	return s, nil
}

// Close releases the server's caches.
func (s *Server) Close() error {
	return s.caches.Close()
}

// Revision returns the identifier of the current layout revision.
func (s *Server) Revision() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.revision
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func layoutBounds(width float64) layout.Rect {
	return layout.Rect{W: width}
}
