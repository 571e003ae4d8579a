package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectivity-monitor/internal/config"
	"connectivity-monitor/internal/database"
	"connectivity-monitor/internal/models"
	"connectivity-monitor/internal/monitor"
	"connectivity-monitor/internal/ping"
	"connectivity-monitor/internal/report"
	"connectivity-monitor/internal/session"
	"connectivity-monitor/internal/speed"
	"connectivity-monitor/internal/web"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize components
	var prober models.Prober = ping.New()
	if cfg.Probe == config.ProbeICMP {
		prober = ping.NewICMP(cfg.Privileged)
	}

	var transferer models.Transferer
	if cfg.SpeedURL != "" {
		transferer = speed.New(cfg.SpeedTimeout)
	}

	var dirs models.SessionDirectory = session.PlatformDirectory{}
	if cfg.SessionsDir != "" {
		dirs = session.StaticDirectory(cfg.SessionsDir)
	}

	var (
		archive    models.Archive
		archiveSrc web.ArchiveSource
	)
	if cfg.ArchivePath != "" {
		db, err := openArchive(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize archive: %v", err)
		}
		defer db.Close()
		archive, archiveSrc = db, db
	}

	writer := session.NewWriter(dirs, archive)
	mon, err := monitor.New(cfg, prober, transferer, writer)
	if err != nil {
		log.Fatalf("Failed to create monitor: %v", err)
	}

	var webServer *web.Server
	if cfg.Port > 0 {
		static, err := fs.Sub(staticFiles, "static")
		if err != nil {
			log.Fatalf("Failed to load static files: %v", err)
		}
		webServer = web.New(mon, writer, archiveSrc, cfg.Port, static)
		go func() {
			if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start web server: %v", err)
			}
		}()
		log.Printf("Web interface available at http://localhost:%d", cfg.Port)
	}

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	if err := mon.Start(); err != nil {
		log.Fatalf("Failed to start monitor: %v", err)
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	if webServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown: %v", err)
		}
		cancel()
	}

	stopErr := mon.Stop()
	summary, ok := mon.Summary()
	if !ok {
		log.Fatalf("Failed to stop monitor: %v", stopErr)
	}

	if cfg.ReportDir != "" {
		if _, err := report.NewGenerator().Generate(summary, cfg.ReportDir); err != nil {
			log.Printf("Failed to generate report: %v", err)
		}
	}

	fmt.Println(report.FormatText(summary))
	if stopErr != nil {
		log.Fatalf("Failed to save session: %v", stopErr)
	}
	fmt.Printf("Session saved to %s\n", mon.SessionPath())
}

func openArchive(cfg config.Config) (*database.DB, error) {
	db, err := database.New(cfg.ArchivePath)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	if cfg.Retention > 0 {
		removed, err := db.Prune(cfg.Retention, time.Now())
		if err != nil {
			log.Printf("Failed to prune archive: %v", err)
		} else if removed > 0 {
			log.Printf("Pruned %d archived samples older than %v", removed, cfg.Retention)
		}
	}
	return db, nil
}
