// Package drive recovers a hosted file's identifier from the many link forms
// upstream services emit and rebuilds canonical links from it.
package drive

import (
	"net/url"
	"strings"

	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
)

const (
	thumbnailHost = "drive.google.com"
	thumbnailPath = "/thumbnail"
	thumbnailSize = "w1000"
)

// Refs is the normalized set of links for one hosted file. A nil field means
// no usable value was found.
type Refs struct {
	DisplayURL   *string `json:"displayUrl" yaml:"displayUrl"`
	EditURL      *string `json:"editUrl" yaml:"editUrl"`
	ThumbnailURL *string `json:"thumbnailUrl" yaml:"thumbnailUrl"`
	FileID       *string `json:"fileId" yaml:"fileId"`
}

// Canonicalize normalizes an image reference payload of any shape.
func Canonicalize(v any) Refs {
	return FromRecord(payload.Unwrap(v))
}

// CanonicalizeURL treats a single raw link as an image URL.
func CanonicalizeURL(raw string) Refs {
	return FromRecord(payload.Record{"url": raw})
}

// FromRecord normalizes an already unwrapped record.
func FromRecord(rec payload.Record) Refs {
	if rec == nil {
		return Refs{}
	}

	fileID := fields.Image.Get(rec, fields.FileID)
	if isPlaceholder(fileID) {
		fileID = ""
	}

	image := fields.Image.Get(rec, fields.ImageURL)
	thumb := fields.Image.Get(rec, fields.ThumbnailURL)
	download := fields.Image.Get(rec, fields.DownloadURL)
	view := fields.Image.Get(rec, fields.ViewURL)

	if fileID == "" {
		for _, raw := range []string{image, thumb, view, download} {
			if id, ok := ExtractFileID(raw); ok {
				fileID = id
				break
			}
		}
	}

	if fileID != "" {
		return FromFileID(fileID)
	}

	if IsBrokenThumbnail(thumb) {
		thumb = ""
	}
	display := firstNonEmpty(image, download, thumb)
	edit := firstNonEmpty(view, image, download, display)

	return Refs{
		DisplayURL:   optional(display),
		EditURL:      optional(edit),
		ThumbnailURL: optional(thumb),
	}
}

// FromFileID builds all canonical links for a known file identifier.
func FromFileID(id string) Refs {
	id = strings.TrimSpace(id)
	if id == "" {
		return Refs{}
	}
	return Refs{
		DisplayURL:   optional(DisplayURL(id)),
		EditURL:      optional(EditURL(id)),
		ThumbnailURL: optional(ThumbnailURL(id)),
		FileID:       optional(id),
	}
}

// DisplayURL is the full-resolution direct-content link.
func DisplayURL(id string) string {
	return "https://lh3.googleusercontent.com/d/" + url.PathEscape(id)
}

// EditURL is the file view page, which offers editing and sharing.
func EditURL(id string) string {
	return "https://drive.google.com/file/d/" + url.PathEscape(id) + "/view"
}

// ThumbnailURL is a lightweight preview at a fixed size.
func ThumbnailURL(id string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("sz", thumbnailSize)
	return "https://" + thumbnailHost + thumbnailPath + "?" + q.Encode()
}

// IsBrokenThumbnail reports whether raw is a thumbnail link whose id was lost
// upstream, e.g. https://drive.google.com/thumbnail?id=undefined.
func IsBrokenThumbnail(raw string) bool {
	u, ok := parseAbsolute(raw)
	if !ok {
		return false
	}
	if !strings.EqualFold(u.Hostname(), thumbnailHost) || strings.TrimSuffix(u.Path, "/") != thumbnailPath {
		return false
	}
	id := strings.TrimSpace(u.Query().Get("id"))
	return id == "" || isPlaceholder(id)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isPlaceholder matches the stringified empty values some workflows emit.
func isPlaceholder(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "undefined", "null":
		return true
	}
	return false
}

// String is a nil-safe accessor for optional link fields.
func String(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
