package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelectors are tried in order until one yields text
var DefaultSelectors = []string{"article", "main", "body"}

// blockSelector lists the elements that become their own paragraph
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, dd, dt, figcaption"

// noiseSelector lists elements whose content is never prose
const noiseSelector = "script, style, noscript, template, nav, iframe"

// Parser extracts prose from HTML, keeping paragraph structure so line and
// paragraph statistics stay meaningful
type Parser struct {
	selectors   []string
	logger      *slog.Logger
	failedCount int64 // Atomic counter for failed extractions
}

// New creates a Parser. An empty selector list uses DefaultSelectors.
func New(selectors []string, logger *slog.Logger) *Parser {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		selectors: selectors,
		logger:    logger,
	}
}

// ExtractText returns the text of the first selector that matches non-empty
// content. Block elements are separated by a blank line.
func (p *Parser) ExtractText(reader io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	for _, sel := range p.selectors {
		content := doc.Find(sel).First()
		if content.Length() == 0 {
			continue
		}

		text := paragraphs(content)
		if text != "" {
			p.logger.Debug("Extracted text", "selector", sel, "chars", len(text))
			return text, nil
		}
	}

	atomic.AddInt64(&p.failedCount, 1)
	p.logger.Debug("No selector matched any text", "selectors", p.selectors)

	return "", fmt.Errorf("failed to extract text: no selector in %v matched content", p.selectors)
}

// FailedCount returns the number of documents that yielded no text
func (p *Parser) FailedCount() int64 {
	return atomic.LoadInt64(&p.failedCount)
}

// paragraphs joins the outermost block elements of content with blank lines,
// falling back to the whole text when there are none
func paragraphs(content *goquery.Selection) string {
	var parts []string

	content.Find(blockSelector).
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.ParentsFiltered(blockSelector).Length() == 0
		}).
		Each(func(_ int, s *goquery.Selection) {
			if text := collapseSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})

	if len(parts) == 0 {
		return collapseSpace(content.Text())
	}
	return strings.Join(parts, "\n\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
