package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chatads/internal/config"
	"chatads/internal/jobs"
	"chatads/internal/metrics"
	"chatads/internal/server"
)

func main() {
	cfg := config.Load()

	targeting, err := config.LoadTargeting()
	if err != nil {
		log.Fatalf("Failed to load targeting config: %v", err)
	}
	if targeting != nil {
		log.Println("Loaded targeting overrides")
	}

	if cfg.LLMAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; chat requests will fail")
	}

	metrics.Init()

	deps := server.NewDeps(cfg, targeting)

	srv := server.New(cfg)
	srv.RegisterRoutes(deps)

	// Background cache sweep
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	sweeper := jobs.NewSweeper(deps.Cache, cfg.SweepInterval)
	go sweeper.Start(sweepCtx)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelSweep()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
