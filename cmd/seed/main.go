package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"booksland-be/internal/config"
	"booksland-be/internal/entity"
	"booksland-be/internal/repository/implementation"
	"booksland-be/pkg/database"

	"github.com/google/uuid"
)

type seedBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       int64  `json:"price"`
	Cover       string `json:"cover"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// Seeds the books table from a JSON file. Usage:
//
//	go run ./cmd/seed [path/to/books.json]
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(&entity.Book{}); err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	path := "data/books.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Panicf("Unable to read seed file %s: %v", path, err)
	}

	var seeds []seedBook
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Panicf("Invalid seed file: %v", err)
	}

	ctx := context.Background()
	repo := implementation.NewBookRepository(gormDB)

	count, err := repo.Count(ctx)
	if err != nil {
		log.Panicf("Count failed: %v", err)
	}
	if count > 0 {
		log.Printf("Books table already has %d rows, skipping seed", count)
		return
	}

	now := time.Now()
	books := make([]*entity.Book, 0, len(seeds))
	for _, s := range seeds {
		books = append(books, &entity.Book{
			Id:          uuid.New(),
			Title:       s.Title,
			Author:      s.Author,
			Price:       s.Price,
			Cover:       s.Cover,
			Description: s.Description,
			Stock:       s.Stock,
			CreatedAt:   now,
		})
	}

	if err := repo.CreateBulk(ctx, books); err != nil {
		log.Panicf("Seed failed: %v", err)
	}
	log.Printf("✅ Seeded %d books", len(books))
}
