package rfc9110

import (
	"net/http"
	"time"
)

// Conditions holds the validators a client sent with a GET or HEAD request.
// Absent or unusable fields are nil.
type Conditions struct {
	IfNoneMatch     *IfNoneMatch
	IfModifiedSince *time.Time
}

// ParseConditions extracts If-None-Match and If-Modified-Since from header.
// Malformed values are treated as absent; parsing never fails.
func ParseConditions(header http.Header) Conditions {
	var c Conditions
	if inm, ok := ParseIfNoneMatch(header); ok {
		c.IfNoneMatch = &inm
	}
	if ims, ok := ParseIfModifiedSince(header); ok {
		c.IfModifiedSince = &ims
	}
	return c
}

// §  13.2.2.  Precedence of Preconditions
// §
// §     When more than one conditional request header field is present in a
// §     request, the order in which the fields are evaluated becomes
// §     important.  In practice, the fields defined in this document are
// §     consistently implemented in a single, logical order, since "lost
// §     update" preconditions have more strict requirements than cache
// §     validation, a validated cache is more efficient than a partial
// §     response, and entity tags are presumed to be more accurate than date
// §     validators.
// §
// §     A recipient cache or origin server MUST evaluate the request
// §     preconditions defined by this specification in the following order:
// §
// §     [...]
// §
// §     3.  When If-None-Match is present, evaluate the If-None-Match
// §         precondition:
// §
// §         *  if true, continue to step 5
// §
// §         *  if false for GET/HEAD, respond 304 (Not Modified)
// §
// §     4.  When the method is GET or HEAD, If-None-Match is not present, and
// §         If-Modified-Since is present, evaluate the If-Modified-Since
// §         precondition:
// §
// §         *  if true, continue to step 5
// §
// §         *  if false, respond 304 (Not Modified)
// §
// §     5.  Perform the requested method and respond according to its success
// §         or failure.
//
// NotModified reports whether a GET or HEAD for a representation with the
// given validators should be answered with 304 (Not Modified).
// If-None-Match, when present, decides alone; If-Modified-Since is not
// consulted even if it alone would indicate a change.
func (c Conditions) NotModified(etag EntityTag, lastModified time.Time) bool {
	if c.IfNoneMatch != nil {
		return c.IfNoneMatch.Matches(etag)
	}
	if c.IfModifiedSince != nil {
		return !ModifiedSince(lastModified, *c.IfModifiedSince)
	}
	return false
}
