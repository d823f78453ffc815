package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/janpfeifer/HeartPairs/internal/config"
	"github.com/janpfeifer/HeartPairs/internal/frontend"
	"github.com/janpfeifer/HeartPairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Run starts the server and blocks until the context is canceled.
//
// If started is not nil, the server state is sent to it once the server is
// listening, with Address set to the actual address (useful when cfg.Addr
// is empty and a free port is picked).
func Run(ctx context.Context, cfg *config.Config, started chan<- *ServerState) error {
	// Initialize global client state for server-side prerendering without panic
	frontend.InitState()

	serverState := NewServerState()

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/watch", func() app.Composer { return &frontend.Watch{} })

	// The compiled webassembly and static assets live under /web and are
	// served by the file server below.
	h := &app.Handler{
		Name:        cfg.Name,
		Title:       cfg.Title,
		Description: cfg.Description,
		Version:     game.Version,
		Styles: []string{
			"/web/css/main.css",
		},
		Env: cfg.Env(),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID) // add X-Request-ID
	r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	r.Use(chimw.Recoverer) // recover from panics

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.HandleFunc("/ws", serverState.HandleWS)
	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(cfg.WebDir))))
	r.Handle("/*", h)

	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	serverState.Address = listener.Addr().String()

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
		}
	}()
	if started != nil {
		started <- serverState
	}

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	serverState.CloseAll()
	return srv.Shutdown(shutdownCtx)
}
