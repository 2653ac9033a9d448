package main

import (
	"context"
	"log"

	"footballadmin/internal/bootstrap"
	"footballadmin/internal/config"
	"footballadmin/internal/observability"
	"footballadmin/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	logger := observability.NewLogger()
	ctx := context.Background()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Fatal(ctx, "shutdown failed", err)
	}
}
