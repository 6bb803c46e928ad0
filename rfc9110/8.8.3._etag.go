package rfc9110

import (
	"fmt"
	"strings"
)

// §  8.8.3.  ETag
// §
// §     The "ETag" field in a response provides the current entity tag for
// §     the selected representation, as determined at the conclusion of
// §     handling the request.  An entity tag is an opaque validator for
// §     differentiating between multiple representations of the same
// §     resource, regardless of whether those multiple representations are
// §     due to resource state changes over time, content negotiation
// §     resulting in multiple representations being valid at the same time,
// §     or both.  An entity tag consists of an opaque quoted string, possibly
// §     prefixed by a weakness indicator.
// §
// §       ETag       = entity-tag
// §
// §       entity-tag = [ weak ] opaque-tag
// §       weak       = %s"W/"
// §       opaque-tag = DQUOTE *etagc DQUOTE
// §       etagc      = %x21 / %x23-7E / obs-text
// §                  ; VCHAR except double quotes, plus obs-text
type EntityTag struct {
	// Opaque is the tag without the surrounding quotes.
	Opaque string
	Weak   bool
}

// StrongETag returns a strong entity-tag for the given opaque value,
// typically a content hash.
func StrongETag(opaque string) EntityTag {
	return EntityTag{Opaque: opaque}
}

// String returns the field value form of the tag, e.g. `W/"xyzzy"`.
func (e EntityTag) String() string {
	if e.Weak {
		return `W/"` + e.Opaque + `"`
	}
	return `"` + e.Opaque + `"`
}

// ParseEntityTag parses a single entity-tag.
func ParseEntityTag(s string) (EntityTag, error) {
	tag, rest, err := scanEntityTag(strings.TrimSpace(s))
	if err != nil {
		return tag, err
	}
	if rest != "" {
		return EntityTag{}, fmt.Errorf("trailing data after entity-tag: %q", rest)
	}
	return tag, nil
}

// scanEntityTag reads one entity-tag from the start of s and returns it along
// with the unread remainder.
func scanEntityTag(s string) (EntityTag, string, error) {
	var tag EntityTag
	if strings.HasPrefix(s, "W/") {
		tag.Weak = true
		s = s[2:]
	}
	if len(s) == 0 || s[0] != '"' {
		return EntityTag{}, s, fmt.Errorf("entity-tag must start with a double quote: %q", s)
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			tag.Opaque = s[1:i]
			return tag, s[i+1:], nil
		}
		if !isEtagc(c) {
			return EntityTag{}, s, fmt.Errorf("invalid character %q in entity-tag", c)
		}
	}
	return EntityTag{}, s, fmt.Errorf("unterminated entity-tag: %q", s)
}

func isEtagc(c byte) bool {
	return c == 0x21 || (c >= 0x23 && c <= 0x7e) || c >= 0x80
}

// §  8.8.3.2.  Comparison
// §
// §     There are two entity-tag comparison functions, depending on whether
// §     or not the comparison context allows the use of weak validators:
// §
// §     Strong comparison:  two entity tags are equivalent if both are not
// §        weak and their opaque-tags match character-by-character.
// §
// §     Weak comparison:  two entity tags are equivalent if their opaque-tags
// §        match character-by-character, regardless of either or both being
// §        tagged as "weak".
func (e EntityTag) StrongMatch(other EntityTag) bool {
	return !e.Weak && !other.Weak && e.Opaque == other.Opaque
}

func (e EntityTag) WeakMatch(other EntityTag) bool {
	return e.Opaque == other.Opaque
}
