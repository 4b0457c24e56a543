package engine

import (
	"strings"

	"github.com/answerfinder/answerfinder/internal/match"
)

// Stats summarizes the loaded corpus and today's fallback usage.
type Stats struct {
	TotalLines    int    `json:"totalLines"`
	QuestionLines int    `json:"questionLines"`
	QuotaUsed     int    `json:"quotaUsed"`
	QuotaMax      int    `json:"quotaMax"`
	LastQuestion  string `json:"lastQuestion,omitempty"`
	LastAnswer    string `json:"lastAnswer,omitempty"`
}

// Stats computes current statistics. Question lines are counted with the
// same heuristic the matcher uses for answer-block extraction.
func (e *Engine) Stats() Stats {
	st := e.state.Get()
	used, max := e.quota.Usage()

	stats := Stats{
		QuotaUsed:    used,
		QuotaMax:     max,
		LastQuestion: st.LastQuestion,
		LastAnswer:   st.LastAnswer,
	}

	corp := e.corpus.Corpus()
	if corp == nil {
		return stats
	}

	stats.TotalLines = corp.Len()
	for i := 0; i < corp.Len(); i++ {
		line := strings.TrimSpace(corp.Line(i))
		if line != "" && match.IsQuestionLine(line) {
			stats.QuestionLines++
		}
	}

	return stats
}
