// Package fallback escalates low-confidence queries to the remote model
// proxy and normalizes its responses into the shared MatchResult shape.
package fallback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/answerfinder/answerfinder/internal/cache"
	"github.com/answerfinder/answerfinder/internal/model"
	"github.com/answerfinder/answerfinder/internal/state"
)

// Client calls the remote model proxy. Resolve never returns a Go error;
// every failure maps to a success:false MatchResult so the fallback can only
// upgrade, never block, the user-visible response.
type Client struct {
	endpoint   string
	confidence float64
	httpClient *http.Client
	cache      cache.Cache
	store      *state.Store
}

type fallbackRequest struct {
	Inputs string `json:"inputs"`
}

// fallbackResponse covers both the current and the legacy response field.
type fallbackResponse struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
	Error         string `json:"error"`
}

// NewClient creates a fallback client. The cache may be nil; results are
// then not cached under the AI-namespaced key.
func NewClient(cfg model.FallbackConfig, c cache.Cache, store *state.Store) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	confidence := cfg.Confidence
	if confidence == 0 {
		confidence = 0.85
	}

	return &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		confidence: confidence,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		store:      store,
	}
}

// Resolve builds the prompt, calls the proxy and parses the response into a
// MatchResult with matchType "ai" and the fixed fallback confidence.
func (c *Client) Resolve(ctx context.Context, query string) *model.MatchResult {
	key := cache.Key(cache.NamespaceAI, cache.Normalize(query))

	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var res model.MatchResult
			if err := json.Unmarshal(data, &res); err == nil {
				res.Cached = true
				return &res
			}
		}
	}

	instanceID, err := c.store.InstanceID()
	if err != nil {
		return model.Failure(model.ErrNetwork, fmt.Sprintf("AI service unavailable: %v", err))
	}

	body, err := json.Marshal(fallbackRequest{Inputs: BuildPrompt(query)})
	if err != nil {
		return model.Failure(model.ErrNetwork, fmt.Sprintf("AI service unavailable: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.Failure(model.ErrNetwork, fmt.Sprintf("AI service unavailable: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Extension-Key", instanceID)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Failure(model.ErrNetwork, fmt.Sprintf("AI service unavailable: %v", err))
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return model.Failure(model.ErrNetwork, fmt.Sprintf("AI service unavailable: %v", err))
	}

	if httpResp.StatusCode == http.StatusTooManyRequests {
		return model.Failure(model.ErrQuotaExceededUpstream, "Daily AI quota exceeded (server)")
	}

	payload, perr := parseBody(respBody)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		msg := fmt.Sprintf("AI server error: %d", httpResp.StatusCode)
		if perr == nil && payload.Error != "" {
			msg = fmt.Sprintf("AI server error: %s", payload.Error)
		}
		return model.Failure(model.ErrUpstream, msg)
	}

	if perr != nil {
		return model.Failure(model.ErrMalformedResponse, "Unreadable response from AI")
	}

	rawText := payload.GeneratedText
	if rawText == "" {
		rawText = payload.SummaryText
	}
	if rawText == "" {
		return model.Failure(model.ErrMalformedResponse, "Empty response from AI")
	}

	parsed, err := ParseResponse(rawText)
	if err != nil {
		return model.Failure(model.ErrMalformedResponse, fmt.Sprintf("Unrecognized AI response: %v", err))
	}

	result := &model.MatchResult{
		Success: true,
		Question: &model.Question{
			Original: model.QA{Question: query, Answer: parsed.Answer},
		},
		Confidence:  c.confidence,
		MatchType:   model.MatchTypeAI,
		Explanation: parsed.Reasoning,
	}

	if c.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = c.cache.Set(key, data, 0)
		}
	}

	return result
}

// parseBody accepts either a bare response object or the legacy
// single-element array form.
func parseBody(data []byte) (fallbackResponse, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []fallbackResponse
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fallbackResponse{}, fmt.Errorf("unmarshal response array: %w", err)
		}
		if len(list) == 0 {
			return fallbackResponse{}, fmt.Errorf("empty response array")
		}
		return list[0], nil
	}

	var resp fallbackResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return fallbackResponse{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp, nil
}
