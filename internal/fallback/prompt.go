package fallback

import (
	"fmt"
	"strings"
)

// BuildPrompt constructs the model prompt for a query. The instructions pin
// the response to the exact "Answer: ... Reasoning: ..." shape that
// ParseResponse extracts.
func BuildPrompt(query string) string {
	return fmt.Sprintf(`You are an assistant that answers assessment questions concisely.

Question or selected text:
%s

Respond in EXACTLY this format and nothing else:
Answer: <the answer, one short sentence or phrase>
Reasoning: <one sentence explaining why>`, strings.TrimSpace(query))
}

// Parsed is the structured pair extracted from the model's free text.
type Parsed struct {
	Answer    string
	Reasoning string
}

// ParseResponse extracts the {answer, reasoning} pair from raw model text.
// It fails when the text has no recognizable "Answer:" marker, which callers
// treat as a malformed upstream response.
func ParseResponse(raw string) (Parsed, error) {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	ai := strings.Index(lower, "answer:")
	if ai < 0 {
		return Parsed{}, fmt.Errorf("no answer marker in response")
	}

	rest := text[ai+len("answer:"):]
	restLower := lower[ai+len("answer:"):]

	var reasoning string
	if ri := strings.Index(restLower, "reasoning:"); ri >= 0 {
		reasoning = strings.TrimSpace(rest[ri+len("reasoning:"):])
		rest = rest[:ri]
	}

	answer := strings.TrimSpace(rest)
	answer = strings.TrimSpace(strings.TrimSuffix(answer, "."))
	if answer == "" {
		return Parsed{}, fmt.Errorf("empty answer in response")
	}

	return Parsed{Answer: answer, Reasoning: reasoning}, nil
}
