package main

import (
	"context"
	"log"

	"booksland-be/internal/bootstrap"
	"booksland-be/internal/config"
	"booksland-be/internal/server"
	"booksland-be/internal/tracer"
	"booksland-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	ctx := context.Background()
	if err := container.IndexerService.Consume(ctx); err != nil {
		log.Printf("Background Indexer Error: %v", err)
	}
	// Push the current catalog so the CLIP index is warm before traffic hits
	if err := container.IndexerService.RequestSync(ctx, "startup"); err != nil {
		log.Printf("Initial catalog sync request failed: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
