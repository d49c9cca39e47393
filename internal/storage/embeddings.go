package storage

import (
	"context"
	"fmt"
	"sync"

	"sitewatch/internal/vlm"
)

// EmbedResult is the outcome of one embedding request.
type EmbedResult struct {
	Content   string
	Embedding []float32
	Err       error
}

type embedWork struct {
	content string
	result  chan<- EmbedResult
}

// EmbedService fans embedding generation out over a bounded worker pool and
// caches results per content string, so re-indexing identical segments does
// not hit the embedding endpoint twice.
type EmbedService struct {
	embedder vlm.Embedder
	queue    chan embedWork
	cache    sync.Map
	wg       sync.WaitGroup
}

// NewEmbedService starts numWorkers workers backed by the given embedder.
func NewEmbedService(embedder vlm.Embedder, numWorkers int) *EmbedService {
	if numWorkers <= 0 {
		numWorkers = 4
	}
	s := &EmbedService{
		embedder: embedder,
		queue:    make(chan embedWork, 100),
	}
	for i := 0; i < numWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *EmbedService) worker() {
	defer s.wg.Done()
	for work := range s.queue {
		if cached, ok := s.cache.Load(work.content); ok {
			if embedding, valid := cached.([]float32); valid {
				work.result <- EmbedResult{Content: work.content, Embedding: embedding}
				continue
			}
		}

		embedding, err := s.embedder.Embed(context.Background(), work.content)
		if err == nil {
			s.cache.Store(work.content, embedding)
		}
		work.result <- EmbedResult{Content: work.content, Embedding: embedding, Err: err}
	}
}

// GetEmbedding queues an embedding request and returns the result channel.
func (s *EmbedService) GetEmbedding(content string) <-chan EmbedResult {
	result := make(chan EmbedResult, 1)
	select {
	case s.queue <- embedWork{content: content, result: result}:
	default:
		result <- EmbedResult{
			Content: content,
			Err:     fmt.Errorf("embedding queue is full, try again later"),
		}
		close(result)
	}
	return result
}

// Close shuts the pool down and waits for in-flight work.
func (s *EmbedService) Close() {
	close(s.queue)
	s.wg.Wait()
}
