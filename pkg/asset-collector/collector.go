// Package collector gathers the files below a directory into asset files,
// hashing their content and deriving route, modification time and MIME type.
package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/always-cache/assets"
)

var ErrNotADirectory = errors.New("not a directory")

type Options struct {
	// FallbackModTime is used for files whose modification time is unknown.
	// embed.FS reports zero for every file. If this is zero as well, the
	// file gets a last-modified time of 0 (the Unix epoch).
	FallbackModTime time.Time
	// Logger for skipped entries. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// CollectDir collects all files below the directory dir on disk.
func CollectDir(dir string, opts Options) ([]assets.File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collecting %s: %w", dir, ErrNotADirectory)
	}
	return Collect(os.DirFS(dir), ".", opts)
}

// Collect collects all files below root in fsys.
// Routes are "/" followed by the slash-separated path relative to root, and
// the result is sorted by route. Symbolic links to files are followed, links
// to directories are skipped.
func Collect(fsys fs.FS, root string, opts Options) ([]assets.File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = &log.Logger
	}
	if root == "" {
		root = "."
	}

	files := make([]assets.File, 0)
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", p, err)
		}
		if d.IsDir() {
			return nil
		}
		info, err := fs.Stat(fsys, p)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			logger.Warn().Str("path", p).Msg("Skipping symbolic link to directory")
			return nil
		}
		if !info.Mode().IsRegular() {
			logger.Debug().Str("path", p).Str("mode", info.Mode().String()).Msg("Skipping irregular file")
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		rel := relativePath(root, p)
		files = append(files, assets.NewFile("/"+rel, content, modTime(info, opts.FallbackModTime), MimeType(rel)))
		logger.Trace().Str("path", rel).Int("size", len(content)).Msg("Collected file")
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Route < files[j].Route
	})
	return files, nil
}

// MimeType guesses the MIME type from the file extension.
func MimeType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return assets.DefaultMimeType
}

func relativePath(root, p string) string {
	if root == "." {
		return p
	}
	return strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

func modTime(info fs.FileInfo, fallback time.Time) int64 {
	t := info.ModTime()
	if t.IsZero() {
		t = fallback
	}
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
