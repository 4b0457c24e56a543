package corpus

import (
	"strings"
	"testing"
)

func TestParse_PreservesBlankLines(t *testing.T) {
	c, err := Parse(strings.NewReader("What is DNS?\n\nDomain Name System.\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Len() != 4 {
		t.Fatalf("expected 4 lines (trailing newline included), got %d", c.Len())
	}
	if c.Line(1) != "" {
		t.Errorf("expected blank line preserved at index 1, got %q", c.Line(1))
	}
	if c.Line(2) != "Domain Name System." {
		t.Errorf("unexpected line 2: %q", c.Line(2))
	}
}

func TestParse_NormalizesWindowsLineEndings(t *testing.T) {
	c, err := Parse(strings.NewReader("one\r\ntwo"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Len() != 2 || c.Line(0) != "one" || c.Line(1) != "two" {
		t.Errorf("unexpected lines: %v", c.Lines())
	}
}

func TestCorpus_Empty(t *testing.T) {
	var nilCorpus *Corpus
	if !nilCorpus.Empty() {
		t.Error("nil corpus must be empty")
	}

	blank := New([]string{"", "  ", "\t"})
	if !blank.Empty() {
		t.Error("blank-only corpus must be empty")
	}

	loaded := New([]string{"", "content"})
	if loaded.Empty() {
		t.Error("corpus with content must not be empty")
	}
}

func TestStore_Replace(t *testing.T) {
	store := NewStore(New([]string{"old"}))

	store.Replace(New([]string{"new content"}))

	if got := store.Corpus().Line(0); got != "new content" {
		t.Errorf("expected replaced corpus, got %q", got)
	}
}

func TestParseHTML_BlockBoundariesBecomeLines(t *testing.T) {
	html := `<html><head><script>ignored()</script></head>
	<body><p>What is DNS?</p><p>Domain Name System.</p></body></html>`

	c, err := ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	var content []string
	for _, line := range c.Lines() {
		if line != "" {
			content = append(content, line)
		}
	}

	if len(content) != 2 {
		t.Fatalf("expected 2 content lines, got %v", content)
	}
	if content[0] != "What is DNS?" || content[1] != "Domain Name System." {
		t.Errorf("unexpected content: %v", content)
	}
	for _, line := range content {
		if strings.Contains(line, "ignored") {
			t.Errorf("script content leaked into corpus: %q", line)
		}
	}
}

func TestParseHTML_InlineTextJoins(t *testing.T) {
	html := `<p>The <b>quick</b> fox</p>`

	c, err := ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	if c.Len() == 0 || c.Line(0) != "The quick fox" {
		t.Errorf("expected inline elements joined, got %v", c.Lines())
	}
}
