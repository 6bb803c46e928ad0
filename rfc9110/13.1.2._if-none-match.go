package rfc9110

import (
	"net/http"
	"strings"
)

// §  13.1.2.  If-None-Match
// §
// §     The "If-None-Match" header field makes the request method conditional
// §     on a recipient cache or origin server either not having any current
// §     representation of the target resource, when the field value is "*",
// §     or having a selected representation with an entity tag that does not
// §     match any of those listed in the field value.
// §
// §     A recipient MUST use the weak comparison function when comparing
// §     entity tags for If-None-Match (Section 8.8.3.2), since weak entity
// §     tags can be used for cache validation even if there have been changes
// §     to the representation data.
// §
// §       If-None-Match = "*" / #entity-tag
type IfNoneMatch struct {
	// Any is set for the "*" form.
	Any  bool
	Tags []EntityTag
}

// ParseIfNoneMatch parses all If-None-Match field lines in header.
// The boolean is false when the field is absent, blank, or holds neither "*"
// nor a single valid entity-tag. Invalid members of an otherwise valid list
// are skipped.
func ParseIfNoneMatch(header http.Header) (IfNoneMatch, bool) {
	if FieldAbsent(header, "If-None-Match") {
		return IfNoneMatch{}, false
	}
	var inm IfNoneMatch
	for _, value := range header.Values("If-None-Match") {
		if strings.TrimSpace(value) == "*" {
			inm.Any = true
			continue
		}
		inm.Tags = append(inm.Tags, ParseEntityTagList(value)...)
	}
	if !inm.Any && len(inm.Tags) == 0 {
		return IfNoneMatch{}, false
	}
	return inm, true
}

// ParseEntityTagList parses a comma-separated list of entity-tags.
// Commas inside the quotes of an opaque-tag are part of the tag.
// Invalid members are skipped up to the next comma.
func ParseEntityTagList(value string) []EntityTag {
	tags := make([]EntityTag, 0)
	rest := value
	for {
		rest = strings.TrimLeft(rest, " \t,")
		if rest == "" {
			return tags
		}
		tag, remainder, err := scanEntityTag(rest)
		if err != nil {
			// skip to the next list member
			idx := strings.IndexByte(rest, ',')
			if idx < 0 {
				return tags
			}
			rest = rest[idx+1:]
			continue
		}
		remainder = strings.TrimLeft(remainder, " \t")
		if remainder != "" && remainder[0] != ',' {
			// not a list separator, so this member is garbage as well
			idx := strings.IndexByte(remainder, ',')
			if idx < 0 {
				return tags
			}
			rest = remainder[idx+1:]
			continue
		}
		tags = append(tags, tag)
		rest = remainder
	}
}

// §     If the field value is "*", the condition is false if the origin
// §     server has a current representation for the target resource.
// §
// §     If the field value is a list of entity tags, the condition is false
// §     if one of the listed tags matches the entity tag of the selected
// §     representation.
//
// Matches reports whether the condition is false for etag, i.e. whether the
// client already holds the selected representation.
func (inm IfNoneMatch) Matches(etag EntityTag) bool {
	if inm.Any {
		return true
	}
	for _, tag := range inm.Tags {
		if tag.WeakMatch(etag) {
			return true
		}
	}
	return false
}
