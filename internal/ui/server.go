// Package ui provides the web interface for DataCanvas.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/chart"
	"github.com/sumanthd032/DataCanvas/internal/insight"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/ui/notifier"
	"github.com/sumanthd032/DataCanvas/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// Server is the main web UI server.
type Server struct {
	sessions     *session.Manager
	sessionStore *sessions.CookieStore
	port         int
	dataDir      string
	previewRows  int
	chartOpts    chart.Options
	thresholds   insight.Thresholds
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the web UI server.
type Config struct {
	Port          int
	SessionSecret string
	TempDir       string
	DataDir       string
	PreviewRows   int
	ChartOptions  chart.Options
	Thresholds    insight.Thresholds
	Logger        *slog.Logger
}

// NewServer creates a new web UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		sessions:     session.NewManager(cfg.TempDir),
		sessionStore: sessionStore,
		port:         cfg.Port,
		dataDir:      cfg.DataDir,
		previewRows:  cfg.PreviewRows,
		chartOpts:    cfg.ChartOptions,
		thresholds:   cfg.Thresholds,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Serve starts the web UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.sessions, s.sessionStore, s.notifier, router.Options{
		DataDir:     s.dataDir,
		PreviewRows: s.previewRows,
		ChartOpts:   s.chartOpts,
		Thresholds:  s.thresholds,
	}); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Watch the data directory if configured
	if s.dataDir != "" {
		eg.Go(func() error {
			return s.watchDataDir(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down web server...")
		err := srv.Shutdown(shutdownCtx)
		if cerr := s.sessions.Close(); err == nil {
			err = cerr
		}
		return err
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchDataDir watches the data directory and pings SSE clients when
// database files appear, change or disappear.
func (s *Server) watchDataDir(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dataDir); err != nil {
		s.logger.Error("failed to watch data directory", "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			switch filepath.Ext(event.Name) {
			case ".db", ".sqlite", ".sqlite3":
			default:
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("data directory changed", "file", event.Name)
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
