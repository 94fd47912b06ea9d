package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pagelens/pagelens/models"
)

// contentSelectors is the ordered chain tried against each document:
// semantic containers first, then common content class names, then
// generic section containers. The first selector whose combined text
// clears minAcceptChars wins.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	".post-content",
	".article-content",
	".entry-content",
	"section",
	".main-content",
}

// minAcceptChars is the combined-text length a selector (or the
// readability rescue) must exceed to be accepted.
const minAcceptChars = 200

// Extractor turns raw HTML into a Page: title, best-effort main
// content text, and word count. Extraction never fails; when every
// heuristic comes up empty the Page simply carries no text.
type Extractor struct{}

// Extract parses raw HTML with the default heuristic chain.
func (e *Extractor) Extract(rawURL string, html []byte) *models.Page {
	return e.ExtractWithMode(rawURL, html, models.ExtractModeHeuristic)
}

// ExtractWithMode parses raw HTML with the requested strategy.
// Readability mode degrades to the heuristic chain when the article
// parser finds nothing; auto mode runs the chain and rescues with
// readability only when the chain bottomed out at whole-document text.
func (e *Extractor) ExtractWithMode(rawURL string, html []byte, mode models.ExtractMode) *models.Page {
	switch mode {
	case models.ExtractModeReadability:
		if page, ok := e.extractReadability(rawURL, html); ok {
			return page
		}
		page, _ := e.extractHeuristic(rawURL, html)
		return page
	case models.ExtractModeAuto:
		page, bottomedOut := e.extractHeuristic(rawURL, html)
		if bottomedOut {
			if rescue, ok := e.extractReadability(rawURL, html); ok && len(rescue.BodyText) > minAcceptChars {
				return rescue
			}
		}
		return page
	default:
		page, _ := e.extractHeuristic(rawURL, html)
		return page
	}
}

// extractHeuristic walks the selector chain, then falls back to all
// paragraph text, then to the whole document's visible text. The
// second return value reports whether the whole-document fallback was
// reached.
func (e *Extractor) extractHeuristic(rawURL string, html []byte) (*models.Page, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return &models.Page{URL: rawURL}, true
	}

	title := normalizeText(doc.Find("title").First().Text())

	// Script and style text is never visible content.
	doc.Find("script, style, noscript").Remove()

	for _, sel := range contentSelectors {
		if text := combinedText(doc, sel); len(text) > minAcceptChars {
			return buildPage(rawURL, title, text), false
		}
	}

	if text := combinedText(doc, "p"); text != "" {
		return buildPage(rawURL, title, text), false
	}

	return buildPage(rawURL, title, normalizeText(doc.Text())), true
}

// extractReadability runs go-readability article extraction.
func (e *Extractor) extractReadability(rawURL string, html []byte) (*models.Page, bool) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(html), parsedURL)
	if err != nil {
		return nil, false
	}

	text := normalizeText(article.TextContent)
	if text == "" {
		return nil, false
	}
	return buildPage(rawURL, normalizeText(article.Title), text), true
}

// combinedText joins the text of every node matching the selector,
// normalized. Empty string when nothing matches.
func combinedText(doc *goquery.Document, selector string) string {
	matches := doc.Find(selector)
	if matches.Length() == 0 {
		return ""
	}

	parts := make([]string, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return normalizeText(strings.Join(parts, " "))
}

// normalizeText collapses all whitespace runs to single spaces and trims.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func buildPage(rawURL, title, text string) *models.Page {
	return &models.Page{
		URL:       rawURL,
		Title:     title,
		BodyText:  text,
		WordCount: len(strings.Fields(text)),
	}
}
