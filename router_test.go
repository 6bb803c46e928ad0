package assets

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/always-cache/assets/rfc9111"
)

var fixtureFiles = []File{
	NewFile("/index.html", []byte("<!doctype html><h1>Hello</h1>"), 1700000000, "text/html"),
	NewFile("/empty.txt", []byte{}, 1700000100, "text/plain"),
	NewFile("/data.json", []byte(`{"hello":"world"}`), 1600000000, "application/json"),
	NewFile("/no-extension", []byte("plain bytes"), 1500000000, ""),
	NewFile("/script.js", []byte("console.log(1)"), 1700000000, "text/javascript"),
	NewFile("/style.css", []byte("body{margin:0}"), 1700000000, "text/css"),
	NewFile("/nested/deep/file.txt", []byte("deep"), 1650000000, "text/plain"),
}

func newTestServer(t *testing.T, prefix string) http.Handler {
	t.Helper()
	table, err := NewTable(fixtureFiles...)
	if err != nil {
		t.Fatalf("Error creating table: %v", err)
	}
	logger := zerolog.Nop()
	r := chi.NewRouter()
	Mount(r, prefix, table, Config{Logger: &logger})
	return r
}

func doRequest(handler http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Add(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Every file is requested with every combination of matching, mismatching and
// absent validators.
func TestRouterConditionalMatrix(t *testing.T) {
	server := newTestServer(t, "/static")
	for _, f := range fixtureFiles {
		full := doRequest(server, http.MethodGet, "/static"+f.Route)
		if full.Code != http.StatusOK {
			t.Fatalf("%s: status %d", f.Route, full.Code)
		}
		etag := full.Header().Get("ETag")
		lastModified := full.Header().Get("Last-Modified")
		if etag != f.ETag().String() {
			t.Fatalf("%s: ETag %s", f.Route, etag)
		}
		if !bytes.Equal(full.Body.Bytes(), f.Content) {
			t.Fatalf("%s: body %q", f.Route, full.Body.String())
		}
		if cl := full.Header().Get("Content-Length"); cl != strconv.Itoa(len(f.Content)) {
			t.Fatalf("%s: Content-Length %s", f.Route, cl)
		}
		if ct := full.Header().Get("Content-Type"); ct != f.MimeType {
			t.Fatalf("%s: Content-Type %s", f.Route, ct)
		}

		tests := []struct {
			name    string
			headers []string
			status  int
		}{
			{"etag", []string{"If-None-Match", etag}, http.StatusNotModified},
			{"weak etag", []string{"If-None-Match", "W/" + etag}, http.StatusNotModified},
			{"wrong etag", []string{"If-None-Match", `"nope"`}, http.StatusOK},
			{"date", []string{"If-Modified-Since", lastModified}, http.StatusNotModified},
			{"old date", []string{"If-Modified-Since", "Thu, 01 Jan 1970 00:00:00 GMT"}, http.StatusOK},
			{"etag and old date", []string{"If-None-Match", etag, "If-Modified-Since", "Thu, 01 Jan 1970 00:00:00 GMT"}, http.StatusNotModified},
			{"wrong etag and date", []string{"If-None-Match", `"nope"`, "If-Modified-Since", lastModified}, http.StatusOK},
			{"garbage etag and date", []string{"If-None-Match", "incorrect-etag", "If-Modified-Since", lastModified}, http.StatusNotModified},
			{"garbage etag and old date", []string{"If-None-Match", "incorrect-etag", "If-Modified-Since", "Thu, 01 Jan 1970 00:00:00 GMT"}, http.StatusOK},
			{"garbage date", []string{"If-Modified-Since", "yesterday"}, http.StatusOK},
		}
		for _, tt := range tests {
			rec := doRequest(server, http.MethodGet, "/static"+f.Route, tt.headers...)
			if rec.Code != tt.status {
				t.Fatalf("%s %s: expected %d, got %d", f.Route, tt.name, tt.status, rec.Code)
			}
			if rec.Header().Get("ETag") != etag || rec.Header().Get("Last-Modified") != lastModified {
				t.Fatalf("%s %s: validators changed", f.Route, tt.name)
			}
			if cc := rfc9111.ParseCacheControl(rec.Header()); !cc.HasDirective("no-cache") || !cc.HasDirective("public") {
				t.Fatalf("%s %s: Cache-Control %s", f.Route, tt.name, rec.Header().Get("Cache-Control"))
			}
			if rec.Code == http.StatusNotModified && rec.Body.Len() != 0 {
				t.Fatalf("%s %s: 304 with body", f.Route, tt.name)
			}
		}
	}
}

func TestRouterHead(t *testing.T) {
	server := newTestServer(t, "/static")
	rec := doRequest(server, http.MethodHead, "/static/index.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status is %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD returned body %q", rec.Body.String())
	}
	if cl := rec.Header().Get("Content-Length"); cl != strconv.Itoa(len(fixtureFiles[0].Content)) {
		t.Fatalf("Content-Length is %s", cl)
	}
	rec = doRequest(server, http.MethodHead, "/static/index.html", "If-None-Match", rec.Header().Get("ETag"))
	if rec.Code != http.StatusNotModified {
		t.Fatalf("Conditional HEAD status is %d", rec.Code)
	}
}

func TestRouterNotFound(t *testing.T) {
	server := newTestServer(t, "/static")
	for _, target := range []string{"/static/missing.html", "/static/nested", "/index.html", "/static/nested/deep"} {
		if rec := doRequest(server, http.MethodGet, target); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status %d", target, rec.Code)
		}
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, "/static")
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		if rec := doRequest(server, method, "/static/index.html"); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: status %d", method, rec.Code)
		}
	}
}

func TestRouterRootMount(t *testing.T) {
	server := newTestServer(t, "")
	if rec := doRequest(server, http.MethodGet, "/nested/deep/file.txt"); rec.Code != http.StatusOK || rec.Body.String() != "deep" {
		t.Fatalf("Status %d, body %q", rec.Code, rec.Body.String())
	}
}

func TestRouterEmptyTable(t *testing.T) {
	logger := zerolog.Nop()
	server := Router(MustTable(), Config{Logger: &logger})
	if rec := doRequest(server, http.MethodGet, "/index.html"); rec.Code != http.StatusNotFound {
		t.Fatalf("Status is %d", rec.Code)
	}
}

func TestRecoverer(t *testing.T) {
	logger := zerolog.Nop()
	handler := recoverer(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	if rec := doRequest(handler, http.MethodGet, "/"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("Status is %d", rec.Code)
	}
}
