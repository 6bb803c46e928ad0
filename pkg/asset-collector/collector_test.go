package collector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/always-cache/assets"
)

var nop = zerolog.Nop()

func TestCollectMapFS(t *testing.T) {
	modified := time.Unix(1700000000, 0)
	fsys := fstest.MapFS{
		"public/index.html":            {Data: []byte("<h1>hi</h1>"), ModTime: modified},
		"public/a.txt":                 {Data: []byte("a"), ModTime: modified},
		"public/a/b.txt":               {Data: []byte("b"), ModTime: modified},
		"public/nested/deep/file.json": {Data: []byte("{}"), ModTime: modified},
		"public/no-extension":          {Data: []byte{}, ModTime: modified},
		"other/ignored.txt":            {Data: []byte("x")},
	}

	files, err := Collect(fsys, "public", Options{Logger: &nop})
	if err != nil {
		t.Fatalf("Error collecting: %v", err)
	}

	routes := make([]string, 0, len(files))
	for _, f := range files {
		routes = append(routes, f.Route)
		if f.LastModified != 1700000000 {
			t.Fatalf("%s: last modified %d", f.Route, f.LastModified)
		}
		if f.ContentHash != assets.ContentHash(f.Content) {
			t.Fatalf("%s: hash %s", f.Route, f.ContentHash)
		}
	}
	want := []string{"/a.txt", "/a/b.txt", "/index.html", "/nested/deep/file.json", "/no-extension"}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Fatalf("Routes mismatch (-want +got):\n%s", diff)
	}
	if files[4].MimeType != assets.DefaultMimeType {
		t.Fatalf("MIME type without extension is %s", files[4].MimeType)
	}
	if !strings.HasPrefix(files[2].MimeType, "text/html") {
		t.Fatalf("MIME type of html is %s", files[2].MimeType)
	}

	// the result must be a valid table
	if _, err := assets.NewTable(files...); err != nil {
		t.Fatalf("Error creating table: %v", err)
	}
}

func TestCollectFallbackModTime(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt": {Data: []byte("a")},
	}
	files, err := Collect(fsys, ".", Options{Logger: &nop})
	if err != nil {
		t.Fatalf("Error collecting: %v", err)
	}
	if files[0].LastModified != 0 || files[0].Route != "/a.txt" {
		t.Fatalf("Got %+v", files[0])
	}

	files, err = Collect(fsys, ".", Options{Logger: &nop, FallbackModTime: time.Unix(1234, 0)})
	if err != nil {
		t.Fatalf("Error collecting: %v", err)
	}
	if files[0].LastModified != 1234 {
		t.Fatalf("Last modified is %d", files[0].LastModified)
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}
	modified := time.Unix(1600000000, 0)
	if err := os.Chtimes(filepath.Join(dir, "css", "style.css"), modified, modified); err != nil {
		t.Fatal(err)
	}

	files, err := CollectDir(dir, Options{Logger: &nop})
	if err != nil {
		t.Fatalf("Error collecting: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Collected %d files", len(files))
	}
	f := files[0]
	if f.Route != "/css/style.css" || f.LastModified != 1600000000 || string(f.Content) != "body{}" {
		t.Fatalf("Got %+v", f)
	}
	if !strings.HasPrefix(f.MimeType, "text/css") {
		t.Fatalf("MIME type is %s", f.MimeType)
	}
}

func TestCollectDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := CollectDir(file, Options{Logger: &nop}); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("Error is %v", err)
	}
	if _, err := CollectDir(filepath.Join(dir, "missing"), Options{Logger: &nop}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Error is %v", err)
	}
}

func TestMimeType(t *testing.T) {
	if got := MimeType("noext"); got != assets.DefaultMimeType {
		t.Fatalf("Got %s", got)
	}
	if got := MimeType("file.zzunknownzz"); got != assets.DefaultMimeType {
		t.Fatalf("Got %s", got)
	}
	if got := MimeType("dir/app.json"); got != "application/json" {
		t.Fatalf("Got %s", got)
	}
}
