package models

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	IndexFile      = "index.html"
	RootPageID     = "index"
	SitemapFile    = "sitemap.xml"
	RobotsFile     = "robots.txt"
	ReportFile     = "build_report.txt"
	ReportDataFile = "build_report.yaml"
)

// slugSegment matches one path segment of a page identifier.
var slugSegment = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateID reports whether id is a usable page identifier: one or more
// lowercase slug segments joined by "/".
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("empty page identifier")
	}
	for _, seg := range strings.Split(id, "/") {
		if !slugSegment.MatchString(seg) {
			return fmt.Errorf("invalid page identifier %q: segment %q must match %s", id, seg, slugSegment.String())
		}
	}
	return nil
}

// PagePath maps a page identifier to its URL path. The root page "index"
// is served at "/", every other identifier at "/{id}/".
func PagePath(id string) string {
	if id == RootPageID {
		return "/"
	}
	return "/" + id + "/"
}

// OutputFile maps a page identifier to the file it is written to under root.
func OutputFile(root, id string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(PagePath(id), "/")), IndexFile)
}

// PathForFile is the inverse of OutputFile for any index.html under root.
// The second return value is false for files that are not page documents.
func PathForFile(root, file string) (string, bool) {
	if filepath.Base(file) != IndexFile {
		return "", false
	}
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "/", true
	}
	return "/" + rel + "/", true
}

// AbsoluteURL joins the site base URL with a page path.
func AbsoluteURL(baseURL, pagePath string) string {
	return strings.TrimRight(baseURL, "/") + pagePath
}
