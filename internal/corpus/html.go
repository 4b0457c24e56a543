package corpus

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries become line breaks, so that an
// HTML-converted document keeps the one-question-per-line shape the matcher
// expects.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "blockquote": true, "pre": true,
}

// ParseHTML extracts visible text from an HTML document and splits it into
// lines at block-element boundaries. Script, style and similar non-content
// subtrees are skipped.
func ParseHTML(r io.Reader) (*Corpus, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		line := strings.TrimSpace(current.String())
		current.Reset()
		if line != "" {
			lines = append(lines, line, "")
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
			if blockTags[n.Data] {
				flush()
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if current.Len() > 0 {
					current.WriteString(" ")
				}
				current.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			flush()
		}
	}
	walk(doc)
	flush()

	// Drop the trailing separator blank
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &Corpus{lines: lines}, nil
}
