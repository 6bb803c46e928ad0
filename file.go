// Package assets serves a fixed table of files over HTTP with conditional
// request support (ETag, Last-Modified, If-None-Match, If-Modified-Since).
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/always-cache/assets/rfc9110"
)

// DefaultMimeType is used for files whose type could not be determined.
const DefaultMimeType = "application/octet-stream"

// File is a single file served by a Table.
// Files are values, but Content is shared: it must not be modified once the
// file has been added to a table.
type File struct {
	// Route the file is served at, starting with a slash, e.g. `/css/style.css`.
	Route string
	// Raw file contents.
	Content []byte
	// Lowercase hex encoded SHA-256 of Content, used for the entity-tag.
	ContentHash string
	// Modification time as Unix seconds.
	LastModified int64
	// Media type sent as Content-Type.
	MimeType string
}

// NewFile creates a file record, computing the content hash.
// An empty mimeType falls back to DefaultMimeType.
func NewFile(route string, content []byte, lastModified int64, mimeType string) File {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return File{
		Route:        route,
		Content:      content,
		ContentHash:  ContentHash(content),
		LastModified: lastModified,
		MimeType:     mimeType,
	}
}

// ContentHash returns the lowercase hex SHA-256 digest of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Path returns the route without its leading slash.
func (f File) Path() string {
	return strings.TrimPrefix(f.Route, "/")
}

// Size returns the content length in bytes.
func (f File) Size() int {
	return len(f.Content)
}

// ETag returns the strong entity-tag derived from the content hash.
func (f File) ETag() rfc9110.EntityTag {
	return rfc9110.StrongETag(f.ContentHash)
}

// ModTime returns LastModified as a time.Time.
func (f File) ModTime() time.Time {
	return time.Unix(f.LastModified, 0)
}
