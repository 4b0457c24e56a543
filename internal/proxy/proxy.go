// Package proxy implements the model-API proxy the fallback client talks
// to: it accepts the extension wire protocol, forwards prompts to an
// OpenAI-compatible chat-completions endpoint and rate-limits callers per
// installation key.
package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/answerfinder/answerfinder/internal/model"
)

// Server is the proxy HTTP server.
type Server struct {
	client  *openai.Client
	model   string
	limiter *Limiter
}

type queryRequest struct {
	Inputs string `json:"inputs"`
}

// New creates a proxy server. The upstream API key is read from the
// configured environment variable.
func New(cfg model.ProxyConfig) (*Server, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", cfg.APIKeyEnv)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.UpstreamURL != "" {
		clientConfig.BaseURL = cfg.UpstreamURL
	}

	return &Server{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		limiter: NewLimiter(cfg.RatePerMinute, cfg.Burst),
	}, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Friendly response for browser visits
	mux.HandleFunc("GET /api/query", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "Proxy server is running. You can close this tab and use the extension.")
	})

	mux.HandleFunc("POST /api/query", s.handleQuery)

	return mux
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Inputs == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing inputs"})
		return
	}

	key := r.Header.Get("X-Extension-Key")
	if key == "" {
		key = "anonymous"
	}

	if !s.limiter.Allow(key) {
		zap.L().Warn("rate limited", zap.String("key", key))
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Daily AI quota exceeded"})
		return
	}

	resp, err := s.client.CreateChatCompletion(r.Context(), openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Inputs},
		},
	})
	if err != nil {
		zap.L().Error("upstream call failed", zap.String("key", key), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "Model API error",
			"details": err.Error(),
		})
		return
	}

	var generated string
	if len(resp.Choices) > 0 {
		generated = resp.Choices[0].Message.Content
	}

	zap.L().Info("query proxied", zap.String("key", key), zap.Int("responseChars", len(generated)))

	writeJSON(w, http.StatusOK, map[string]string{"generated_text": generated})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
