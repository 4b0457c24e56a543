package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/answerfinder/answerfinder/internal/model"
)

// Resolver resolves a single query into a MatchResult.
type Resolver interface {
	Resolve(ctx context.Context, query string) *model.MatchResult
}

// QueryJob resolves one query.
type QueryJob struct {
	Query    string
	Resolver Resolver
}

// Execute runs the resolve and wraps the outcome.
func (j *QueryJob) Execute(ctx context.Context) Result {
	return &QueryResult{
		Query:  j.Query,
		Result: j.Resolver.Resolve(ctx, j.Query),
	}
}

// QueryResult pairs a query with its resolved MatchResult.
type QueryResult struct {
	Query  string             `json:"query"`
	Result *model.MatchResult `json:"result"`
}

// GetError satisfies Result. Resolve maps every recoverable failure into the
// MatchResult itself, so batch jobs never carry a separate error.
func (r *QueryResult) GetError() error {
	return nil
}

// BatchProcessor resolves many queries concurrently through a shared engine.
type BatchProcessor struct {
	resolver    Resolver
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(resolver Resolver, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		resolver:    resolver,
		concurrency: concurrency,
	}
}

// Process resolves all queries and returns one result per query.
func (b *BatchProcessor) Process(ctx context.Context, queries []string) []*QueryResult {
	if len(queries) == 0 {
		return []*QueryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, query := range queries {
			pool.Submit(&QueryJob{Query: query, Resolver: b.resolver})
		}
		pool.Finish()
	}()

	raw := pool.Wait()
	results := make([]*QueryResult, 0, len(raw))
	for _, r := range raw {
		if qr, ok := r.(*QueryResult); ok {
			results = append(results, qr)
		}
	}
	return results
}

// ReadQueriesFromFile loads queries from a file, one per line. Blank lines
// and #-comments are skipped.
func ReadQueriesFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries file: %w", err)
	}

	return queries, nil
}
