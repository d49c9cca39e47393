// Package storage indexes completed runs in PostgreSQL with pgvector
// embeddings, enabling semantic search over analyzed segments.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"sitewatch/internal/models"
)

// embeddingDim matches the nomic-embed-text output dimension.
const embeddingDim = 768

// Store manages the timeline index.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, connString string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// IndexRun stores a completed run and its ok segments with embeddings.
// Segments that failed analysis carry no content worth indexing and are
// skipped.
func (s *Store) IndexRun(ctx context.Context, output models.RunOutput, embed *EmbedService) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, mode, total_chunks, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		output.RunID, string(output.Mode), output.TotalChunks, time.Now())
	if err != nil {
		return fmt.Errorf("store run %s: %w", output.RunID, err)
	}

	// Queue all embeddings up front so the pool works in parallel, then
	// insert in chunk order.
	type pending struct {
		res    models.ChunkResult
		result <-chan EmbedResult
	}
	var queued []pending
	for _, res := range output.Timeline {
		if res.Status != models.StatusOK {
			continue
		}
		queued = append(queued, pending{res: res, result: embed.GetEmbedding(segmentContent(res))})
	}

	for _, p := range queued {
		embedded := <-p.result
		if embedded.Err != nil {
			s.logger.Warn("embedding failed, indexing segment without vector",
				"chunk", p.res.ChunkIndex, "error", embedded.Err)
		}

		var vec any
		if len(embedded.Embedding) == embeddingDim {
			vec = pgvector.NewVector(embedded.Embedding)
		}

		_, err := s.pool.Exec(ctx,
			`INSERT INTO segments
			 (run_id, chunk_index, timestamp_range, activity, productivity, confidence, content, embedding, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (run_id, chunk_index) DO NOTHING`,
			output.RunID, p.res.ChunkIndex, p.res.TimestampRange, p.res.Activity,
			string(p.res.Productivity), p.res.Confidence, segmentContent(p.res), vec, time.Now())
		if err != nil {
			return fmt.Errorf("store segment %d: %w", p.res.ChunkIndex, err)
		}
	}

	s.logger.Info("indexed run", "run_id", output.RunID, "mode", output.Mode, "segments", len(queued))
	return nil
}

// segmentContent flattens a result into the text that gets embedded.
func segmentContent(res models.ChunkResult) string {
	parts := []string{res.Activity}
	if res.Hands != "" {
		parts = append(parts, "Hands: "+res.Hands)
	}
	if res.Reasoning != "" {
		parts = append(parts, res.Reasoning)
	}
	if res.Hazards.Details != "" {
		parts = append(parts, "Hazards: "+res.Hazards.Details)
	}
	return strings.Join(parts, ". ")
}

// SegmentMatch is one semantic search hit.
type SegmentMatch struct {
	RunID          string
	ChunkIndex     int
	TimestampRange string
	Activity       string
	Content        string
	Similarity     float64
}

// Search finds the segments most similar to a free-text query.
func (s *Store) Search(ctx context.Context, embed *EmbedService, query string, limit int) ([]SegmentMatch, error) {
	embedded := <-embed.GetEmbedding(query)
	if embedded.Err != nil {
		return nil, fmt.Errorf("embed query: %w", embedded.Err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT run_id, chunk_index, timestamp_range, activity, content,
		        1 - (embedding <=> $1) AS similarity
		 FROM segments
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(embedded.Embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search segments: %w", err)
	}
	defer rows.Close()

	var matches []SegmentMatch
	for rows.Next() {
		var m SegmentMatch
		if err := rows.Scan(&m.RunID, &m.ChunkIndex, &m.TimestampRange, &m.Activity, &m.Content, &m.Similarity); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// InitSchema creates the database schema if it doesn't exist.
func InitSchema(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	_, err = conn.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			total_chunks INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS segments (
			id SERIAL PRIMARY KEY,
			run_id TEXT REFERENCES runs(id) ON DELETE CASCADE,
			chunk_index INTEGER NOT NULL,
			timestamp_range TEXT NOT NULL,
			activity TEXT NOT NULL,
			productivity TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE(run_id, chunk_index)
		);
	`, embeddingDim))
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	_, err = conn.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_segments_run_id ON segments(run_id);
		CREATE INDEX IF NOT EXISTS idx_segments_embedding ON segments USING ivfflat (embedding vector_l2_ops) WITH (lists = 100);
	`)
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}
