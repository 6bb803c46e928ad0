package rfc9111

import (
	"net/http"
	"strings"

	"github.com/always-cache/assets/rfc9110"
)

// §  5.2.  Cache-Control
// §
// §     The "Cache-Control" header field is used to list directives for
// §     caches along the request/response chain.  Cache directives are
// §     unidirectional, in that the presence of a directive in a request does
// §     not imply that the same directive is present or copied in the
// §     response.
// §
// §     Cache directives are identified by a token, to be compared case-
// §     insensitively, and have an optional argument that can use both token
// §     and quoted-string syntax.  For the directives defined below that
// §     define arguments, recipients ought to accept both forms, even if a
// §     specific form is required for generation.
// §
// §       Cache-Control   = #cache-directive
// §
// §       cache-directive = token [ "=" ( token / quoted-string ) ]

// CacheControl implements parsing of the "Cache-Control" header (/field).
type CacheControl struct {
	directives map[string]string
}

// Get returns the value (/argument) of the specified directive,
// along with a boolean indicating whether this directive is present
func (c CacheControl) Get(directive string) (string, bool) {
	val, ok := c.directives[getCacheControlDirectiveName(directive)]
	return val, ok
}

// HasDirective returns whether the specified directive is present
func (c CacheControl) HasDirective(directive string) bool {
	_, ok := c.Get(directive)
	return ok
}

// ParseCacheControl takes the Cache-Control field lines of header
// and returns an instance of `CacheControl`.
func ParseCacheControl(header http.Header) CacheControl {
	m := make(map[string]string)
	// note setting map values like this means last defined directive wins
	for _, directive := range rfc9110.GetListHeader(header, "Cache-Control") {
		name, arg, _ := strings.Cut(directive, "=")
		m[getCacheControlDirectiveName(name)] = getCacheControlDirectiveArgument(arg)
	}
	return CacheControl{m}
}

// getCacheControlDirectiveName returns a normalized name for the given directive.
func getCacheControlDirectiveName(token string) string {
	// §  [...] to be compared case-insensitively [...]
	return strings.ToLower(strings.TrimSpace(token))
}

// getCacheControlDirectiveArgument returns the directive argument in token form,
// i.e. it converts the argument from "quoted-string" to "token" form if needed.
func getCacheControlDirectiveArgument(arg string) string {
	// §  [...] argument that can use both token and quoted-string syntax. [...]
	return strings.Trim(strings.TrimSpace(arg), "\"")
}

// §  5.2.2.  Response Directives
// §
// §     This section defines cache response directives.  A cache MUST obey
// §     the Cache-Control directives defined in this section.
//
// ResponseDirectives is the subset of response directives this module
// generates. Directives are emitted in a fixed order so the field value is
// stable across responses.
type ResponseDirectives struct {
	// §  5.2.2.4.  no-cache
	// §
	// §     The no-cache response directive, in its unqualified form (without an
	// §     argument), indicates that the response MUST NOT be used to satisfy
	// §     any other request without forwarding it for validation and receiving
	// §     a successful response; see Section 4.3.
	NoCache bool
	// §  5.2.2.9.  public
	// §
	// §     The public response directive indicates that a cache MAY store the
	// §     response even if it would otherwise be prohibited, subject to the
	// §     constraints defined in Section 3.  In other words, public explicitly
	// §     marks the response as cacheable.
	Public bool
}

// Revalidate is `no-cache, public`: any cache, shared ones included, may store
// the response but has to validate it before every reuse.
var Revalidate = ResponseDirectives{NoCache: true, Public: true}

// String returns the Cache-Control field value for the directives.
func (d ResponseDirectives) String() string {
	directives := make([]string, 0, 2)
	if d.NoCache {
		directives = append(directives, "no-cache")
	}
	if d.Public {
		directives = append(directives, "public")
	}
	return strings.Join(directives, ", ")
}
