package model

// Match types identify which engine produced a result.
const (
	MatchTypeLocal = "local"
	MatchTypeAI    = "ai"
)

// QA is a matched question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Question wraps the QA pair as it was matched, before any presentation
// formatting. The nesting mirrors the persisted result schema.
type Question struct {
	Original QA `json:"original"`
}

// MatchResult is the single result shape produced by both the local matcher
// and the remote fallback client. Confidence is always in [0,1]; MatchType is
// "local" unless the result came from the fallback client.
type MatchResult struct {
	Success     bool      `json:"success"`
	Question    *Question `json:"question,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	MatchType   string    `json:"matchType,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	Message     string    `json:"message,omitempty"`
	ErrorCode   ErrorCode `json:"error,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// Failure builds a success:false result. Every recoverable failure in the
// engine is reported this way rather than as a Go error.
func Failure(code ErrorCode, message string) *MatchResult {
	return &MatchResult{
		Success:   false,
		Message:   message,
		ErrorCode: code,
	}
}
