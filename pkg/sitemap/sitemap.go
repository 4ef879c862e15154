// Package sitemap encodes and decodes the sitemap.xml and robots.txt files
// written next to the generated pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/sitegen/models"
)

const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URLSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr,omitempty"`
	URLs    []URLEntry `xml:"url"`
}

type URLEntry struct {
	Loc string `xml:"loc"`
}

// Encode builds a sitemap with one entry per page path, sorted by path.
func Encode(baseURL string, pagePaths []string) ([]byte, error) {
	paths := append([]string(nil), pagePaths...)
	sort.Strings(paths)

	set := URLSet{Xmlns: Namespace, URLs: make([]URLEntry, 0, len(paths))}
	for _, p := range paths {
		set.URLs = append(set.URLs, URLEntry{Loc: models.AbsoluteURL(baseURL, p)})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Parse returns the <loc> values of a sitemap document in document order.
func Parse(data []byte) ([]string, error) {
	var set URLSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}
	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, strings.TrimSpace(u.Loc))
	}
	return locs, nil
}

// Robots returns a robots.txt that allows every crawler and points at the sitemap.
func Robots(baseURL string) []byte {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	fmt.Fprintf(&sb, "Sitemap: %s\n", models.AbsoluteURL(baseURL, "/"+models.SitemapFile))
	return []byte(sb.String())
}
