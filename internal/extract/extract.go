// Package extract turns raw fetched content into clean text suitable for
// classification.
//
// HTML input goes through readability-based main-content extraction (or a
// CSS selector, when the caller knows where the interesting content lives)
// and is converted to markdown, which strips scripts, styles, and attribute
// noise while preserving the visible text. Content that does not look like
// HTML passes through untouched, so plain-text files and piped snippets are
// classified exactly as written.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Options controls how HTML content is reduced to text.
type Options struct {
	// Selector restricts extraction to elements matching a CSS selector.
	Selector string
	// KeepAll converts the whole document instead of the readability-
	// extracted main content.
	KeepAll bool
	// BaseURL gives readability context for resolving relative links; may
	// be nil.
	BaseURL *url.URL
}

// Text reads everything from r and returns clean text for classification.
func Text(r io.Reader, opts Options) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	content := string(raw)
	if !looksLikeHTML(content) {
		return strings.TrimSpace(content), nil
	}

	var text string
	switch {
	case opts.Selector != "":
		text, err = fromSelector(content, opts.Selector)
	case opts.KeepAll:
		text, err = toMarkdown(content)
	default:
		text, err = fromReadability(content, opts.BaseURL)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no content extracted")
	}
	return text, nil
}

// fromReadability extracts the main article content, dropping chrome the
// boilerplate filter would otherwise have to catch.
func fromReadability(content string, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(content), baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return toMarkdown(article.Content)
}

// fromSelector extracts only the elements matching a CSS selector.
func fromSelector(content, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector %q", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if html, err := s.Html(); err == nil {
			parts = append(parts, html)
		}
	})
	return toMarkdown(strings.Join(parts, "\n\n"))
}

// toMarkdown converts an HTML fragment to markdown text.
func toMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}
	return markdown, nil
}

// looksLikeHTML sniffs for markup so plain-text input skips the HTML
// pipeline entirely.
func looksLikeHTML(content string) bool {
	head := strings.ToLower(content)
	if len(head) > 1024 {
		head = head[:1024]
	}
	for _, tag := range []string{"<!doctype html", "<html", "<head", "<body", "<div", "<p>", "<article"} {
		if strings.Contains(head, tag) {
			return true
		}
	}
	return false
}
