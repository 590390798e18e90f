package drive

import (
	"net/url"
	"regexp"
	"strings"
)

// Strategy tries to recover a file identifier from one raw link.
type Strategy struct {
	Name    string
	Extract func(raw string) (string, bool)
}

// Strategies run in order; the first hit wins. Structured parses come first,
// the loose pattern last so it can still rescue links that do not parse.
var Strategies = []Strategy{
	{Name: "query-id", Extract: FromQueryID},
	{Name: "file-path", Extract: FromFilePath},
	{Name: "d-path", Extract: FromDPath},
	{Name: "pattern", Extract: FromPattern},
}

var (
	filePathRe = regexp.MustCompile(`/file/d/([^/?#]+)`)
	dPathRe    = regexp.MustCompile(`/d/([^/?#]+)`)
	looseRe    = regexp.MustCompile(`(?:id=|/file/d/|/d/)([A-Za-z0-9_-]{10,})`)
)

// ExtractFileID runs every strategy against raw.
func ExtractFileID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, s := range Strategies {
		if id, ok := s.Extract(raw); ok {
			return id, true
		}
	}
	return "", false
}

// FromQueryID reads the id query parameter of an absolute URL.
func FromQueryID(raw string) (string, bool) {
	u, ok := parseAbsolute(raw)
	if !ok {
		return "", false
	}
	return usable(u.Query().Get("id"))
}

// FromFilePath matches /file/d/<id>/... in an absolute URL's path.
func FromFilePath(raw string) (string, bool) {
	return fromPath(raw, filePathRe)
}

// FromDPath matches /d/<id>/... in an absolute URL's path.
func FromDPath(raw string) (string, bool) {
	return fromPath(raw, dPathRe)
}

// FromPattern matches the raw string without parsing it.
func FromPattern(raw string) (string, bool) {
	m := looseRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func fromPath(raw string, re *regexp.Regexp) (string, bool) {
	u, ok := parseAbsolute(raw)
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return usable(m[1])
}

func usable(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" || isPlaceholder(id) {
		return "", false
	}
	return id, true
}

// parseAbsolute accepts only URLs with a scheme and host, mirroring a strict
// URL parser. Relative or mangled input falls through to FromPattern.
func parseAbsolute(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}
