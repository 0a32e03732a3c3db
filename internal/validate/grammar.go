package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Namespace identifies which disjoint identifier grammar a token
// belongs to. Modification numbers and service bulletin codes are
// visually similar in source documents but semantically distinct; they
// are told apart by grammar, never by fuzzy similarity.
type Namespace string

const (
	NamespaceModification    Namespace = "modification"
	NamespaceServiceBulletin Namespace = "service_bulletin"
	NamespaceUnknown         Namespace = "unknown"
)

// ErrNamespaceConflict reports an identifier that is syntactically
// valid in both grammars. The grammars are disjoint by construction, so
// a conflict is a defect and is surfaced loudly rather than resolved by
// heuristics.
var ErrNamespaceConflict = errors.New("identifier valid in both modification and service bulletin grammars")

var (
	// Modification numbers: an optional "mod" keyword and a 4-6 digit
	// code, e.g. "mod 24591" or "24591".
	modRe = regexp.MustCompile(`(?i)^(?:mod\.?\s*)?(\d{4,6})$`)

	// Service bulletins: a manufacturer code like "A320-57-1089" with
	// an optional "SB" prefix and an optional revision suffix, e.g.
	// "SB A320-57-1089 Rev 04".
	sbRe = regexp.MustCompile(`(?i)^(?:sb\s*)?([a-z]\d{3}-\d{2,3}-\d{4})(?:\s+rev(?:ision)?\.?\s*(\d{1,2}))?$`)
)

// ParseModification returns the canonical modification number for a
// token in the modification grammar.
func ParseModification(token string) (string, bool) {
	m := modRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseServiceBulletin returns the canonical (uppercased) service
// bulletin identifier and its revision for a token in the service
// bulletin grammar. A token without a stated revision parses as
// revision 0.
func ParseServiceBulletin(token string) (string, int, bool) {
	m := sbRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return "", 0, false
	}
	rev := 0
	if m[2] != "" {
		rev, _ = strconv.Atoi(m[2])
	}
	return strings.ToUpper(m[1]), rev, true
}

// ClassifyIdentifier assigns a free-text token to exactly one
// namespace. Tokens matching neither grammar classify as unknown, which
// is not an error: fleet records carry arbitrary remarks. A token
// matching both grammars returns ErrNamespaceConflict.
func ClassifyIdentifier(token string) (Namespace, error) {
	_, isMod := ParseModification(token)
	_, _, isSB := ParseServiceBulletin(token)

	switch {
	case isMod && isSB:
		return NamespaceUnknown, fmt.Errorf("%q: %w", token, ErrNamespaceConflict)
	case isMod:
		return NamespaceModification, nil
	case isSB:
		return NamespaceServiceBulletin, nil
	default:
		return NamespaceUnknown, nil
	}
}
