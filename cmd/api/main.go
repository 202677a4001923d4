package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"lexlocate/internal/agent"
	"lexlocate/internal/config"
	"lexlocate/internal/http"
	"lexlocate/internal/llm"
	"lexlocate/internal/retriever"
	"lexlocate/internal/storage"
	"lexlocate/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level). A missing LLM
	// credential fails here, before any request is accepted.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize database
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
	slog.Info("Database initialized", "path", cfg.DBPath)

	paragraphRepo := storage.NewParagraphRepo(db)
	keywordIndex := storage.NewFTSIndex(db)

	ctx := context.Background()

	// Initialize Qdrant vector store and validate the collection's
	// dimensionality against configuration.
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantVectorSize)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	hybrid := retriever.NewHybridRetriever(
		keywordIndex,
		vectorStore,
		cfg.QdrantCollection,
		embedder,
		paragraphRepo,
		cfg.RRFK,
	)
	slog.Info("Hybrid retriever initialized", "rrf_k", cfg.RRFK, "top_k", cfg.SearchTopK)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	locator := agent.NewLocator(llmClient, hybrid, cfg.SearchTopK, cfg.AgentMaxIterations)
	slog.Info("Locator agent initialized", "model", cfg.LLMModelName, "max_iterations", cfg.AgentMaxIterations)

	deps := &http.Deps{
		Locator:        locator,
		DB:             db,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
