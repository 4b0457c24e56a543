package fallback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/answerfinder/answerfinder/internal/cache"
	"github.com/answerfinder/answerfinder/internal/model"
	"github.com/answerfinder/answerfinder/internal/state"
)

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return NewClient(model.FallbackConfig{
		Endpoint:   endpoint,
		Confidence: 0.85,
	}, cache.NewMemoryCache(10), store)
}

func TestClient_Resolve_Success(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Extension-Key")

		var req struct {
			Inputs string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Inputs == "" {
			t.Errorf("malformed request body: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"generated_text": "Answer: Paris. Reasoning: capital of France.",
		})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	res := client.Resolve(context.Background(), "capital of France?")

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.MatchType != model.MatchTypeAI {
		t.Errorf("matchType = %s, want ai", res.MatchType)
	}
	if res.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", res.Confidence)
	}
	if res.Question.Original.Answer != "Paris" {
		t.Errorf("answer = %q, want Paris", res.Question.Original.Answer)
	}
	if res.Explanation != "capital of France." {
		t.Errorf("explanation = %q", res.Explanation)
	}
	if gotKey == "" {
		t.Error("expected X-Extension-Key header to carry the instance ID")
	}
}

func TestClient_Resolve_LegacyArrayAndSummaryField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"summary_text": "Answer: UDP"}]`))
	}))
	defer ts.Close()

	res := newTestClient(t, ts.URL).Resolve(context.Background(), "stateless protocol?")
	if !res.Success || res.Question.Original.Answer != "UDP" {
		t.Errorf("legacy response shape not handled: %+v", res)
	}
}

func TestClient_Resolve_CachesUnderAIKey(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]string{"generated_text": "Answer: once"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)

	first := client.Resolve(context.Background(), "repeat me?")
	second := client.Resolve(context.Background(), "repeat me?")

	if calls != 1 {
		t.Errorf("expected one upstream call, got %d", calls)
	}
	if first.Cached {
		t.Error("first result must not be marked cached")
	}
	if !second.Cached {
		t.Error("second result must be marked cached")
	}
	if second.Question.Original.Answer != first.Question.Original.Answer {
		t.Error("cached result must match the original")
	}
}

func TestClient_Resolve_UpstreamQuota(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "quota spent"})
	}))
	defer ts.Close()

	res := newTestClient(t, ts.URL).Resolve(context.Background(), "anything at all?")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ErrorCode != model.ErrQuotaExceededUpstream {
		t.Errorf("error code = %s, want %s", res.ErrorCode, model.ErrQuotaExceededUpstream)
	}
}

func TestClient_Resolve_UpstreamErrorCarriesPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Model API error"})
	}))
	defer ts.Close()

	res := newTestClient(t, ts.URL).Resolve(context.Background(), "anything at all?")
	if res.Success || res.ErrorCode != model.ErrUpstream {
		t.Fatalf("expected upstream error, got %+v", res)
	}
	if res.Message != "AI server error: Model API error" {
		t.Errorf("message should carry the server payload, got %q", res.Message)
	}
}

func TestClient_Resolve_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing text field", `{"unexpected": true}`},
		{"unparsable structure", `{"generated_text": "no recognizable markers"}`},
		{"empty array", `[]`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			res := newTestClient(t, ts.URL).Resolve(context.Background(), "anything at all?")
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.ErrorCode != model.ErrMalformedResponse {
				t.Errorf("error code = %s, want %s", res.ErrorCode, model.ErrMalformedResponse)
			}
		})
	}
}

func TestClient_Resolve_NetworkFailure(t *testing.T) {
	// Closed server: connection refused.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	res := newTestClient(t, ts.URL).Resolve(context.Background(), "anything at all?")
	if res.Success || res.ErrorCode != model.ErrNetwork {
		t.Errorf("expected network failure, got %+v", res)
	}
}
