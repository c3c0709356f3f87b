package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vladimirvolkov/freethrow/internal/config"
	"github.com/vladimirvolkov/freethrow/internal/game"
	"github.com/vladimirvolkov/freethrow/internal/middleware"
	"github.com/vladimirvolkov/freethrow/internal/room"
	"github.com/vladimirvolkov/freethrow/internal/ws"
	"github.com/vladimirvolkov/freethrow/web"
)

type GameManager struct {
	ctx    context.Context
	hub    *ws.Hub
	tuning game.Tuning
}

func (gm *GameManager) CreateRoom(conn *ws.Conn, mode game.Mode) {
	r := room.New(conn.ID, conn, conn.Nickname, mode, gm.tuning)
	r.Start(gm.ctx)
	go func() {
		<-r.Done()
		conn.Close()
		gm.hub.RoomEnded()
	}()
}

func staticHandler(dir string) http.Handler {
	if dir != "" {
		return http.FileServer(http.Dir(dir))
	}
	return http.FileServerFS(web.Static())
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	cfg.SetupLogging()
	mode, _ := cfg.GameMode()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewIPRateLimiter(cfg.MaxConnsPerIP, cfg.MsgRate, cfg.MsgWindow)
	go limiter.Run(ctx)

	manager := &GameManager{ctx: ctx, tuning: cfg.Tuning}
	hub := ws.NewHub(manager, limiter, ws.HubConfig{
		OriginPatterns: cfg.AllowedOrigins,
		DefaultMode:    mode,
		MaxRooms:       cfg.MaxRooms,
	})
	manager.hub = hub

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Stats())
	})
	mux.Handle("/", middleware.NoCache(staticHandler(cfg.StaticDir)))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.SecurityHeaders(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("free throw server starting", "port", cfg.Port, "mode", mode, "static", cfg.StaticDir)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
