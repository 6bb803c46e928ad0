package assets

import (
	"net/http"
	"strconv"

	"github.com/always-cache/assets/rfc9110"
	"github.com/always-cache/assets/rfc9111"
)

// Response is the outcome of resolving a conditional request against a file.
type Response struct {
	// StatusCode is either http.StatusOK or http.StatusNotModified.
	StatusCode int
	Header     http.Header
	// Body is the full content for 200 and nil for 304.
	Body []byte
}

// NotModified reports whether the response is a 304.
func (res Response) NotModified() bool {
	return res.StatusCode == http.StatusNotModified
}

// Resolve decides between a full response and 304 (Not Modified) for f, given
// the client's validators, and builds the response headers.
//
// ETag, Last-Modified, Cache-Control and Vary are set on both outcomes; a 200
// additionally carries Content-Type and the content.
// Resolve has no side effects and the same input always gives the same output.
func Resolve(f File, c rfc9110.Conditions) Response {
	etag := f.ETag()

	header := make(http.Header, 5)
	header.Set("ETag", etag.String())
	header.Set("Last-Modified", rfc9110.FormatUnixHttpDate(f.LastModified))
	header.Set("Cache-Control", rfc9111.Revalidate.String())
	// set even though no content-coding is negotiated yet
	header.Set("Vary", "Accept-Encoding")

	if c.NotModified(etag, f.ModTime()) {
		return Response{
			StatusCode: http.StatusNotModified,
			Header:     header,
		}
	}

	header.Set("Content-Type", f.MimeType)
	return Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       f.Content,
	}
}

// ResolveRequest resolves the conditional headers of r against f.
func ResolveRequest(f File, r *http.Request) Response {
	return Resolve(f, rfc9110.ParseConditions(r.Header))
}

// Write sends the response to w.
// Content-Length is added for 200, and the body is left out for HEAD requests.
func (res Response) Write(w http.ResponseWriter, r *http.Request) error {
	copyHeadersTo(w.Header(), res.Header)
	if res.StatusCode == http.StatusOK {
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	}
	w.WriteHeader(res.StatusCode)
	if r.Method == http.MethodHead || len(res.Body) == 0 {
		return nil
	}
	_, err := w.Write(res.Body)
	return err
}

// copyHeadersTo copies the headers from one http.Header to another.
func copyHeadersTo(dst, src http.Header) {
	for name, values := range src {
		for _, value := range values {
			dst.Set(name, value)
		}
	}
}
