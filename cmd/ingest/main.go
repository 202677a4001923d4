package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"lexlocate/internal/config"
	"lexlocate/internal/ingest"
	"lexlocate/internal/llm"
	"lexlocate/internal/storage"
	"lexlocate/internal/vectorstore"
)

// Offline ingestion: reads source document JSON files from RAW_DATA_DIR and
// indexes every cleaned paragraph into SQLite (record store + FTS) and
// Qdrant under one shared id. Run before starting the API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantVectorSize)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	pipeline := ingest.NewPipeline(
		storage.NewParagraphRepo(db),
		storage.NewFTSIndex(db),
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	slog.Info("Starting ingestion", "dir", cfg.RawDataDir)
	total, err := pipeline.IngestDirectory(ctx, cfg.RawDataDir)
	if err != nil {
		log.Fatalf("Ingestion failed after %d paragraphs: %v", total, err)
	}
	slog.Info("Ingestion completed", "paragraphs", total)
}
