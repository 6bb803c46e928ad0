package rfc9110

import (
	"net/http"
	"strings"
)

// §  5.6.1.  Lists (#rule ABNF Extension)
// §
// §     A #rule extension to the ABNF rules of [RFC5234] is used to improve
// §     readability in the definitions of some header field values.
// §
// §     A construct "#" is defined, similar to "*", for defining comma-
// §     delimited lists of elements.
//
// GetListHeader returns the trimmed, non-empty members of a list-based field,
// combining all field lines with that name.
// Members are split on commas only, so it must not be used for fields whose
// members may contain quoted commas (see ParseEntityTagList for those).
func GetListHeader(header http.Header, field string) []string {
	list := make([]string, 0)
	for _, hdr := range header.Values(field) {
		for _, item := range strings.Split(hdr, ",") {
			// §  [...] a recipient MUST accept empty list elements [...]
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
	}
	return list
}

// FieldAbsent reports whether the field has no non-blank value in header.
func FieldAbsent(header http.Header, field string) bool {
	for _, v := range header.Values(field) {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
