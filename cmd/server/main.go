package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/stickerstage/internal/asset"
	"github.com/inamate/stickerstage/internal/config"
	"github.com/inamate/stickerstage/internal/engine"
	mw "github.com/inamate/stickerstage/internal/middleware"
	"github.com/inamate/stickerstage/internal/session"
	"github.com/inamate/stickerstage/internal/typeid"
	"github.com/inamate/stickerstage/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	engineOpts := engine.Options{
		Stage: workspace.Stage{
			Width:  cfg.StageWidth,
			Height: cfg.StageHeight,
			Color:  cfg.StageColor,
		},
		HistoryLimit:  cfg.HistoryLimit,
		StrictCapture: cfg.StrictCapture,
	}

	hub := session.NewHub()
	go hub.Run()

	assets := asset.NewStore()
	assetHandler := asset.NewHandler(assets, cfg.MaxUploadBytes)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, hub.Len())
	}).Methods("GET")

	// Picture uploads live in memory for the life of the process
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/assets/{assetId}", assetHandler.Serve).Methods("GET")

	// WebSocket endpoint: one private editor per connection
	r.HandleFunc("/ws/stage", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, assets, engineOpts, cfg.OriginPatterns())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "stage", fmt.Sprintf("%vx%v", cfg.StageWidth, cfg.StageHeight))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, assets *asset.Store, opts engine.Options, origins []string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	s := session.NewSession(hub, conn, engine.NewEngine(opts), assets, typeid.NewSessionID(), clientID)

	hub.Register(s)

	ctx := r.Context()
	go s.WritePump(ctx)
	s.ReadPump(ctx)
}
