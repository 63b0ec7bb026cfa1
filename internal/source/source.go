// Package source loads the text to analyze from a file, stdin or a URL.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/firefly/text-analyzer/internal/fetcher"
	"github.com/firefly/text-analyzer/internal/parser"
)

// Stdin is the target name that reads standard input
const Stdin = "-"

// Document is a loaded text and where it came from
type Document struct {
	Name string
	Text string
	HTML bool
}

// Loader resolves targets to documents
type Loader struct {
	fetch  *fetcher.Fetcher
	parser *parser.Parser
	stdin  io.Reader
}

// NewLoader creates a Loader. fetch may be nil when URLs are not needed.
func NewLoader(fetch *fetcher.Fetcher, htmlParser *parser.Parser) *Loader {
	return &Loader{
		fetch:  fetch,
		parser: htmlParser,
		stdin:  os.Stdin,
	}
}

// SetStdin replaces the reader used for the "-" target
func (l *Loader) SetStdin(r io.Reader) {
	l.stdin = r
}

// Load reads target: "-" for stdin, an http(s) URL, or a file path. HTML
// content is reduced to its text. An empty document is not an error here;
// the analyzer reports it.
func (l *Loader) Load(ctx context.Context, target string) (Document, error) {
	switch {
	case target == Stdin:
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return Document{}, fmt.Errorf("reading stdin: %w", err)
		}
		return l.document("stdin", data, looksLikeHTML(data))

	case IsURL(target):
		if l.fetch == nil {
			return Document{}, fmt.Errorf("fetching %s: URL inputs are not enabled", target)
		}
		page, err := l.fetch.Fetch(ctx, target)
		if err != nil {
			return Document{}, fmt.Errorf("fetching %s: %w", target, err)
		}
		html := strings.Contains(page.ContentType, "html") || looksLikeHTML(page.Body)
		return l.document(target, page.Body, html)

	default:
		data, err := os.ReadFile(target)
		if err != nil {
			return Document{}, fmt.Errorf("reading input file: %w", err)
		}
		ext := strings.ToLower(filepath.Ext(target))
		return l.document(target, data, ext == ".html" || ext == ".htm")
	}
}

// HTMLFailures returns the number of HTML documents this loader could not
// extract any text from
func (l *Loader) HTMLFailures() int64 {
	if l.parser == nil {
		return 0
	}
	return l.parser.FailedCount()
}

// IsURL reports whether target names an http or https resource
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func (l *Loader) document(name string, data []byte, html bool) (Document, error) {
	if !html {
		return Document{Name: name, Text: string(data)}, nil
	}

	text, err := l.parser.ExtractText(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("extracting text from %s: %w", name, err)
	}
	return Document{Name: name, Text: text, HTML: true}, nil
}

// looksLikeHTML sniffs the start of data for an HTML document
func looksLikeHTML(data []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 512)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
