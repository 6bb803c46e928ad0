package rfc9110

import (
	"net/http"
	"time"
)

// §  13.1.3.  If-Modified-Since
// §
// §     The "If-Modified-Since" header field makes a GET or HEAD request
// §     method conditional on the selected representation's modification
// §     date being more recent than the date provided in the field value.
// §     Transfer of the selected representation's data is avoided if that
// §     data has not changed.
// §
// §       If-Modified-Since = HTTP-date
// §
// §     A recipient MUST ignore the If-Modified-Since header field if the
// §     received field value is not a valid HTTP-date, the field value has
// §     more than one member, or if the request method is neither GET nor
// §     HEAD.
//
// ParseIfModifiedSince returns the field's date, with false when the field is
// absent, repeated, or not a valid HTTP-date.
func ParseIfModifiedSince(header http.Header) (time.Time, bool) {
	values := header.Values("If-Modified-Since")
	if len(values) != 1 {
		return time.Time{}, false
	}
	date, err := HttpDate(values[0])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// §     When used for cache updates, a cache will typically use the value of
// §     the cached message's Last-Modified header field to generate the field
// §     value of a new If-Modified-Since.
// §
// §     An origin server that receives an If-Modified-Since header field
// §     SHOULD evaluate the condition as per Section 13.2 prior to performing
// §     the method.
// §
// §     The origin server SHOULD NOT perform the requested method if the
// §     selected representation's last modification date is earlier than or
// §     equal to the date provided in the field value; instead, the origin
// §     server SHOULD generate a 304 (Not Modified) response.
//
// ModifiedSince reports whether lastModified is later than since.
// HTTP-dates have one second resolution, so both sides are truncated to whole
// seconds before comparing.
func ModifiedSince(lastModified, since time.Time) bool {
	return lastModified.Unix() > since.Unix()
}
