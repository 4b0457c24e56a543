// Package engine sequences the matching components into a single Resolve
// operation: cache lookup, local keyword matching, confidence classification
// and quota-governed escalation to the remote fallback.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/answerfinder/answerfinder/internal/cache"
	"github.com/answerfinder/answerfinder/internal/corpus"
	"github.com/answerfinder/answerfinder/internal/fallback"
	"github.com/answerfinder/answerfinder/internal/match"
	"github.com/answerfinder/answerfinder/internal/model"
	"github.com/answerfinder/answerfinder/internal/quota"
	"github.com/answerfinder/answerfinder/internal/state"
)

// Engine is the match orchestrator. It always produces a MatchResult;
// recoverable failures never propagate as Go errors to the caller.
type Engine struct {
	corpus   *corpus.Store
	cache    cache.Cache // nil when caching is disabled
	quota    *quota.Tracker
	fallback *fallback.Client // nil when the fallback is not configured
	state    *state.Store
	verbose  bool
}

// New wires an engine from configuration and the shared stores.
func New(cfg *model.Config, corpusStore *corpus.Store, stateStore *state.Store) *Engine {
	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Persistent && cfg.Cache.Dir != "" {
			resultCache = cache.NewLayeredCache(cfg.Cache.MaxEntries, cfg.Cache.Dir)
		} else {
			resultCache = cache.NewMemoryCache(cfg.Cache.MaxEntries)
		}
	}

	var fb *fallback.Client
	if cfg.Fallback.Enabled && cfg.Fallback.Endpoint != "" {
		fb = fallback.NewClient(cfg.Fallback, resultCache, stateStore)
	}

	return &Engine{
		corpus:   corpusStore,
		cache:    resultCache,
		quota:    quota.NewTracker(stateStore, cfg.Quota.MaxPerDay),
		fallback: fb,
		state:    stateStore,
		verbose:  cfg.Output.Verbose,
	}
}

// Resolve locates the best answer for a query. The fallback is attempted at
// most once, and only upgrades the response: if it is disabled, out of quota
// or fails, the local result (or the no-match result) is returned instead.
func (e *Engine) Resolve(ctx context.Context, query string) *model.MatchResult {
	keywords := match.Keywords(query)
	if len(keywords) == 0 {
		return model.Failure(model.ErrNoKeywords, "No valid keywords found in the selected text.")
	}

	corp := e.corpus.Corpus()
	if corp.Empty() {
		return model.Failure(model.ErrNoCorpus, "No answer source loaded. Upload your converted PDF content and try again.")
	}

	key := cache.Key(cache.NamespaceLocal, cache.Normalize(query))
	if cached := e.lookup(key); cached != nil {
		return cached
	}

	var local *model.MatchResult
	if cand, ok := match.Match(keywords, corp); ok {
		confidence := match.LocalConfidence(cand.Score, len(keywords))
		local = &model.MatchResult{
			Success: true,
			Question: &model.Question{
				Original: model.QA{
					Question: query,
					Answer:   match.ExtractAnswer(corp, cand.LineIndex),
				},
			},
			Confidence:  confidence,
			MatchType:   model.MatchTypeLocal,
			Explanation: fmt.Sprintf("Matched %d of %d keywords on line %d", cand.Score, len(keywords), cand.LineIndex+1),
		}
	}

	tier := match.TierNone
	if local != nil {
		tier = match.Classify(local.Confidence)
	}

	if match.ShouldEscalate(tier) && e.fallbackEnabled() {
		if err := e.quota.CheckAndReserve(); err == nil {
			if res := e.fallback.Resolve(ctx, query); res.Success {
				e.finish(key, query, res)
				return res
			} else if e.verbose {
				fmt.Fprintf(os.Stderr, "Warning: fallback failed: %s\n", res.Message)
			}
		} else if e.verbose {
			fmt.Fprintf(os.Stderr, "Warning: fallback skipped: %v\n", err)
		}
	}

	if local == nil {
		return model.Failure(model.ErrNoMatch, "No matching answer found. Try selecting more specific text.")
	}

	e.finish(key, query, local)
	return local
}

// fallbackEnabled combines the static configuration with the persisted
// aiEnabled setting.
func (e *Engine) fallbackEnabled() bool {
	return e.fallback != nil && e.state.Get().Settings.AIEnabled
}

// lookup returns a cached result annotated cached:true, or nil on a miss.
// The stored bytes are never mutated.
func (e *Engine) lookup(key string) *model.MatchResult {
	if e.cache == nil {
		return nil
	}

	data, found := e.cache.Get(key)
	if !found {
		return nil
	}

	var res model.MatchResult
	if err := json.Unmarshal(data, &res); err != nil {
		// Corrupt entry for this key; drop it without touching others.
		_ = e.cache.Delete(key)
		return nil
	}

	res.Cached = true
	return &res
}

// finish caches a successful result under the lookup key and records the
// question/answer pair in the persisted state.
func (e *Engine) finish(key, query string, res *model.MatchResult) {
	if e.cache != nil {
		stored := *res
		stored.Cached = false
		if data, err := json.Marshal(&stored); err == nil {
			_ = e.cache.Set(key, data, 0)
		}
	}

	if res.Question == nil {
		return
	}
	if err := e.state.Update(func(st *state.State) {
		st.LastQuestion = query
		st.LastAnswer = res.Question.Original.Answer
	}); err != nil && e.verbose {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist last answer: %v\n", err)
	}
}
