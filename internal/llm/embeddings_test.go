package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexlocate/internal/vectorstore"
)

func newEmbeddingsServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		data := make([]EmbeddingData, len(vectors))
		for i, vec := range vectors {
			data[i] = EmbeddingData{Embedding: vec}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(EmbeddingsResponse{Data: data}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
}

func TestEmbedTexts(t *testing.T) {
	server := newEmbeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)

	vecs, err := client.EmbedTexts(context.Background(), []string{"some text"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vecs) != 1 || len(vecs[0]) != 3 {
		t.Fatalf("EmbedTexts() = %v, want one vector of size 3", vecs)
	}
}

func TestEmbedTextsWrongSizeIsDimensionMismatch(t *testing.T) {
	server := newEmbeddingsServer(t, [][]float64{{0.1, 0.2}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 768)

	_, err := client.EmbedTexts(context.Background(), []string{"some text"})
	if !errors.Is(err, vectorstore.ErrDimensionMismatch) {
		t.Fatalf("EmbedTexts() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost", "test-key", "test-model", 3)

	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts() with no input should return error")
	}
}
