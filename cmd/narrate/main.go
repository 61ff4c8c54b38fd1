package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vibhusapra/Narrate/internal/api"
	"github.com/vibhusapra/Narrate/internal/config"
	"github.com/vibhusapra/Narrate/internal/tts"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("narrate " + version)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is a convenience for local runs; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dispatcher := tts.NewDispatcher(cfg.TTS)
	handler := api.NewRouter(dispatcher, cfg).Setup()

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// a synthesis response stays open for up to the provider timeout,
		// so the write timeout rides on top of it
		WriteTimeout: time.Duration(cfg.TTS.TimeoutSeconds+15) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting narrate server", "addr", cfg.Addr(), "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
