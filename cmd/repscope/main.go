package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/repscope/internal/config"
	"github.com/claude/repscope/internal/recap"
	"github.com/claude/repscope/internal/server"
	"github.com/claude/repscope/internal/storage"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	runRecap := flag.Bool("run-recap", false, "run one weekly recap batch and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("RepScope starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Recap pipeline
	loc, err := time.LoadLocation(cfg.Recap.Timezone)
	if err != nil {
		log.Error("invalid recap timezone", "timezone", cfg.Recap.Timezone, "error", err)
		os.Exit(1)
	}

	ledger, err := recap.OpenLedger(cfg.Recap.StateDir)
	if err != nil {
		log.Error("failed to open recap ledger", "error", err)
		os.Exit(1)
	}
	defer ledger.Close()

	narrator := recap.NewLLMNarrator(cfg.LLM)
	mailer := recap.NewSMTPMailer(cfg.SMTP, log)
	scheduler := recap.NewScheduler(db, db, narrator, mailer, ledger, loc, log)

	if *runRecap {
		if err := scheduler.RunOnce(ctx, time.Now().In(loc)); err != nil {
			log.Error("recap batch failed", "error", err)
			os.Exit(1)
		}
		log.Info("recap batch finished, exiting")
		return
	}

	if err := scheduler.Start(cfg.Recap.Schedule); err != nil {
		log.Error("failed to start recap scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Create server
	srv := server.New(db, narrator, mailer, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
