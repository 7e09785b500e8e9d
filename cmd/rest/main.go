package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/krishngohel/AIDebateTool/internal/bootstrap"
	"github.com/krishngohel/AIDebateTool/internal/config"
	"github.com/krishngohel/AIDebateTool/internal/server"
	"github.com/krishngohel/AIDebateTool/internal/tracer"
	"github.com/krishngohel/AIDebateTool/pkg/session/sqlite"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless TRACING_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.App.TracingEnabled, cfg.App.OTLPEndpoint)
	defer shutdownTracer(context.Background())

	// 3. Session store
	if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0755); err != nil {
		log.Panicf("Unable to create data directory: %v", err)
	}
	sessionStore, err := sqlite.New(cfg.Store.SQLitePath)
	if err != nil {
		log.Panicf("Unable to open session store: %v", err)
	}
	defer sessionStore.Close()

	// 4. Bootstrap dependencies
	container := bootstrap.NewContainer(sessionStore, cfg)

	// 5. Start the session-log recorder
	if err := container.RecorderService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start recorder service: %v", err)
	}

	// 6. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
