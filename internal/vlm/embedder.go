package vlm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Embedder produces a vector embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, content string) ([]float32, error)
}

// OllamaEmbedder generates embeddings through the Ollama embeddings endpoint.
type OllamaEmbedder struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewOllamaEmbedder(baseURL string, port int, model string) *OllamaEmbedder {
	return &OllamaEmbedder{
		endpoint: fmt.Sprintf("%s:%d/api/embeddings", baseURL, port),
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *OllamaEmbedder) Embed(ctx context.Context, content string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Prompt: content})
	if err != nil {
		return nil, fmt.Errorf("encode embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call embeddings endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embeddings endpoint returned %d: %s", resp.StatusCode, payload)
	}

	var decoded embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(decoded.Embedding) == 0 {
		return nil, fmt.Errorf("embeddings endpoint returned an empty vector")
	}
	return decoded.Embedding, nil
}
