package model

// ErrorCode classifies a recoverable failure carried inside a MatchResult.
type ErrorCode string

const (
	ErrNoKeywords            ErrorCode = "NO_KEYWORDS"             // query produced no searchable tokens
	ErrNoCorpus              ErrorCode = "NO_CORPUS"               // corpus empty or not loaded
	ErrNoMatch               ErrorCode = "NO_MATCH"                // no line scored above zero
	ErrQuotaExceededLocal    ErrorCode = "QUOTA_EXCEEDED"          // daily fallback quota spent locally
	ErrQuotaExceededUpstream ErrorCode = "QUOTA_EXCEEDED_UPSTREAM" // proxy answered 429
	ErrUpstream              ErrorCode = "UPSTREAM_ERROR"          // proxy answered non-2xx, non-429
	ErrMalformedResponse     ErrorCode = "MALFORMED_RESPONSE"      // missing text field or unparsable structure
	ErrNetwork               ErrorCode = "NETWORK_FAILURE"
)
