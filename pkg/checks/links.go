// Package checks holds the QA checks. Every check is a pure function over an
// immutable snapshot of page facts, so checks can run concurrently.
package checks

import (
	"net/url"
	"path"
	"strings"

	"github.com/dtnitsch/sitegen/models"
)

// NormalizeLink maps a root-relative href to the page path it targets.
// The second value is false for hrefs that are not checked: external and
// protocol-relative URLs, mailto:, tel:, fragment-only and relative links.
func NormalizeLink(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return "", false
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return NormalizePath(href), true
}

// NormalizePath canonicalizes a URL path so "/x", "/x/" and "/x/index.html"
// compare equal. Paths with a file extension keep their last segment.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	p = path.Clean("/" + p)
	if p == "/"+models.IndexFile {
		return "/"
	}
	p = strings.TrimSuffix(p, "/"+models.IndexFile)
	if p == "/" {
		return p
	}
	if path.Ext(p) != "" {
		return p
	}
	return p + "/"
}

// BrokenLinks reports every internal link whose target is not among known
// page paths. One finding is produced per occurrence, in page then link order.
func BrokenLinks(pages []models.PageFacts, known []string) []models.Finding {
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[NormalizePath(k)] = true
	}

	var findings []models.Finding
	for _, p := range pages {
		for _, href := range p.Links {
			target, ok := NormalizeLink(href)
			if !ok || valid[target] {
				continue
			}
			findings = append(findings, models.BrokenLink(p.Path, href))
		}
	}
	return findings
}
