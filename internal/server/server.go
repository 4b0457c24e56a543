// Package server exposes the answer engine over HTTP using the extension's
// message contract: QUERY_ANSWER messages in, RESPONSE or ERROR messages
// out, plus corpus upload and stats endpoints.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/answerfinder/answerfinder/internal/corpus"
	"github.com/answerfinder/answerfinder/internal/engine"
	"github.com/answerfinder/answerfinder/internal/model"
)

// Query length bounds enforced at this boundary, before the engine runs.
const (
	minQueryLen = 3
	maxQueryLen = 500
)

// Message is the inbound/outbound envelope.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// QueryPayload is the QUERY_ANSWER payload.
type QueryPayload struct {
	Query string `json:"query"`
}

type errorPayload struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Server serves the engine over HTTP.
type Server struct {
	engine *engine.Engine
	corpus *corpus.Store
	cfg    model.ServerConfig
}

// New creates a server around a shared engine and corpus store.
func New(cfg model.ServerConfig, eng *engine.Engine, corpusStore *corpus.Store) *Server {
	return &Server{
		engine: eng,
		corpus: corpusStore,
		cfg:    cfg,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/message", s.handleMessage)
	mux.HandleFunc("POST /api/corpus", s.handleCorpusUpload)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	return mux
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid message body")
		return
	}

	requestID := msg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if msg.Type != "QUERY_ANSWER" {
		writeError(w, http.StatusBadRequest, requestID, fmt.Sprintf("unsupported message type: %s", msg.Type))
		return
	}

	var payload QueryPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		writeError(w, http.StatusBadRequest, requestID, "invalid query payload")
		return
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(payload.Query)); n < minQueryLen || n > maxQueryLen {
		writeError(w, http.StatusBadRequest, requestID,
			fmt.Sprintf("query must be between %d and %d characters", minQueryLen, maxQueryLen))
		return
	}

	result := s.engine.Resolve(r.Context(), payload.Query)

	zap.L().Info("query resolved",
		zap.String("requestId", requestID),
		zap.Bool("success", result.Success),
		zap.String("matchType", result.MatchType),
		zap.Bool("cached", result.Cached),
		zap.Float64("confidence", result.Confidence),
	)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, requestID, "failed to encode result")
		return
	}

	writeJSON(w, http.StatusOK, Message{
		Type:      "RESPONSE",
		Payload:   resultJSON,
		RequestID: requestID,
	})
}

func (s *Server) handleCorpusUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.MaxUploadSize
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	body := http.MaxBytesReader(w, r.Body, maxSize)

	var (
		corp *corpus.Corpus
		err  error
	)
	if strings.Contains(r.Header.Get("Content-Type"), "text/html") {
		corp, err = corpus.ParseHTML(body)
	} else {
		corp, err = corpus.Parse(body)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("parse corpus: %v", err)})
		return
	}

	if corp.Empty() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "uploaded corpus has no content"})
		return
	}

	s.corpus.Replace(corp)

	zap.L().Info("corpus replaced", zap.Int("lines", corp.Len()))

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"lines":  corp.Len(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, requestID, message string) {
	var payload errorPayload
	payload.Error.Message = message

	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, Message{
		Type:      "ERROR",
		Payload:   data,
		RequestID: requestID,
	})
}
