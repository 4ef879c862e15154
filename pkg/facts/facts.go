// Package facts parses emitted HTML documents into models.PageFacts.
package facts

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sitegen/models"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var (
	ErrInvalidUTF8   = errors.New("document is not valid UTF-8")
	ErrEmptyDocument = errors.New("document is empty")
)

// Extractor derives the structural facts of one page document.
// pagePath is the URL path the document is served at.
type Extractor interface {
	Extract(pagePath string, doc []byte) (models.PageFacts, error)
}

// HTMLExtractor is the goquery-backed Extractor.
type HTMLExtractor struct {
	// BaseURL resolves page paths for readability; defaults to models.DefaultBaseURL.
	BaseURL string
	// MainText enables readability main-content extraction. It is only
	// needed by the language check and roughly doubles parse time.
	MainText bool
}

// skipText lists elements whose text content is never shown to readers.
var skipText = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

func (e *HTMLExtractor) Extract(pagePath string, doc []byte) (models.PageFacts, error) {
	pf := models.PageFacts{Path: pagePath, Links: []string{}}

	if len(bytes.TrimSpace(doc)) == 0 {
		return pf, ErrEmptyDocument
	}
	if !utf8.Valid(doc) {
		return pf, ErrInvalidUTF8
	}

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return pf, fmt.Errorf("failed to parse html: %w", err)
	}
	gq := goquery.NewDocumentFromNode(root)

	pf.Title = normalizeText(gq.Find("title").First().Text())
	pf.Lang = strings.TrimSpace(gq.Find("html").AttrOr("lang", ""))

	gq.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), "description") {
			pf.Description = normalizeText(s.AttrOr("content", ""))
			return false
		}
		return true
	})

	gq.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href = strings.TrimSpace(href); href != "" {
			pf.Links = append(pf.Links, href)
		}
	})

	for _, body := range gq.Find("body").Nodes {
		pf.TextLength += visibleTextLength(body)
	}

	if e.MainText {
		pf.MainText = e.mainText(pagePath, doc)
	}

	return pf, nil
}

// visibleTextLength counts code points of whitespace-trimmed text nodes.
func visibleTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && skipText[n.Data] {
		return 0
	}
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += visibleTextLength(c)
	}
	return total
}

func (e *HTMLExtractor) mainText(pagePath string, doc []byte) string {
	base := e.BaseURL
	if base == "" {
		base = models.DefaultBaseURL
	}
	pageURL, err := url.Parse(models.AbsoluteURL(base, pagePath))
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(doc), pageURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// normalizeText collapses runs of whitespace into single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
