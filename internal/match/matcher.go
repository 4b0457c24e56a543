package match

import (
	"regexp"
	"strings"

	"github.com/answerfinder/answerfinder/internal/corpus"
)

// maxAnswerLines caps how many non-blank lines are accumulated into an
// answer block after a question line.
const maxAnswerLines = 5

var (
	// questionLeadRe recognizes lines that open like a question or an
	// instruction ("fill in...", "select...", "true or false...").
	questionLeadRe = regexp.MustCompile(`(?i)^(what|which|who|where|when|why|how|fill|complete|select|true|false)`)

	// sectionBoundaryRe recognizes the start of a new question or section
	// header, which terminates answer-block accumulation.
	sectionBoundaryRe = regexp.MustCompile(`(?i)^(module|final assessment|what|which|who|where|when|why|how|[0-9]+\.)`)
)

// Candidate is the best-scoring corpus line for a keyword set.
type Candidate struct {
	LineIndex int
	Score     int
}

// Match scores every corpus line against the keyword set and returns the
// highest-scoring line. The score of a line is the count of distinct keywords
// contained anywhere in it, case-insensitive; substring containment is
// deliberate so partial-word hits tolerate OCR noise in converted PDF text.
// Ties resolve to the lowest index. A zero score is not a match.
func Match(keywords []string, c *corpus.Corpus) (Candidate, bool) {
	best := Candidate{LineIndex: -1}

	for i := 0; i < c.Len(); i++ {
		line := strings.ToLower(c.Line(i))

		score := 0
		for _, kw := range keywords {
			if strings.Contains(line, kw) {
				score++
			}
		}

		if score > best.Score {
			best = Candidate{LineIndex: i, Score: score}
		}
	}

	if best.Score == 0 {
		return Candidate{}, false
	}
	return best, true
}

// IsQuestionLine reports whether a line looks like a question: it contains a
// question mark or opens with a question/instruction word.
func IsQuestionLine(line string) bool {
	return strings.Contains(line, "?") || questionLeadRe.MatchString(line)
}

// ExtractAnswer returns the answer text for the matched line. If the line is
// a question and not the last line, up to maxAnswerLines subsequent non-blank
// lines are accumulated until a section boundary (or a blank line immediately
// followed by one) and joined with single spaces. Otherwise, or when nothing
// accumulates, the matched line itself is the answer.
func ExtractAnswer(c *corpus.Corpus, lineIndex int) string {
	matched := strings.TrimSpace(c.Line(lineIndex))

	if !IsQuestionLine(matched) || lineIndex >= c.Len()-1 {
		return matched
	}

	i := lineIndex + 1
	for i < c.Len() && strings.TrimSpace(c.Line(i)) == "" {
		i++
	}

	var answer []string
	for i < c.Len() && len(answer) < maxAnswerLines {
		line := strings.TrimSpace(c.Line(i))

		if line == "" {
			if i+1 < c.Len() && sectionBoundaryRe.MatchString(strings.TrimSpace(c.Line(i+1))) {
				break
			}
			i++
			continue
		}

		if sectionBoundaryRe.MatchString(line) {
			break
		}

		answer = append(answer, line)
		i++
	}

	if len(answer) == 0 {
		return matched
	}
	return strings.Join(answer, " ")
}
