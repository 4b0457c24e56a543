// Package corpus holds the loaded answer source as an ordered sequence of
// text lines. A corpus is immutable once built; re-uploads replace it
// wholesale through the Store.
package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Corpus is an immutable ordered sequence of raw text lines. Blank lines are
// preserved because the answer-block heuristics depend on them; a line's
// identity is its index.
type Corpus struct {
	lines []string
}

// New builds a corpus from pre-split lines.
func New(lines []string) *Corpus {
	return &Corpus{lines: lines}
}

// Parse reads plain text and splits it into lines, preserving blanks.
// Windows line endings are normalized.
func Parse(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return &Corpus{lines: strings.Split(text, "\n")}, nil
}

// Load reads a plain-text corpus file from disk.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Len returns the number of lines, blank lines included.
func (c *Corpus) Len() int {
	return len(c.lines)
}

// Line returns the raw line at index i.
func (c *Corpus) Line(i int) string {
	return c.lines[i]
}

// Lines returns the underlying line slice. Callers must not modify it.
func (c *Corpus) Lines() []string {
	return c.lines
}

// Empty reports whether the corpus has no searchable content (unloaded, or
// blank lines only).
func (c *Corpus) Empty() bool {
	if c == nil {
		return true
	}
	for _, line := range c.lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// Store owns the current corpus and serializes replacement against
// concurrent readers.
type Store struct {
	mu     sync.RWMutex
	corpus *Corpus
}

// NewStore creates a store holding the given corpus (nil is allowed; the
// engine reports it as NoCorpus until a replacement arrives).
func NewStore(c *Corpus) *Store {
	return &Store{corpus: c}
}

// Corpus returns the current corpus.
func (s *Store) Corpus() *Corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus
}

// Replace swaps in a new corpus wholesale.
func (s *Store) Replace(c *Corpus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = c
}
