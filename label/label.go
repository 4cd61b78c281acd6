// Package label validates the human-readable label strings attached to
// guardians, contests, contest options, and ballot styles, per spec
// section 6: valid UTF-8, no leading/trailing whitespace, no repeated
// whitespace runs, excludes several Unicode categories entirely, and
// requires at least one printable character.
package label

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/egguard/core/egerrors"
)

// excludedCategory reports whether r belongs to a Unicode category spec
// section 6 excludes outright: control (Cc), line/paragraph separators
// (Zl, Zp), surrogates (Cs), and space separators (Zs) other than the
// single ASCII space U+0020 (which is allowed as an interior separator,
// just not doubled or at the edges).
func excludedCategory(r rune) bool {
	if unicode.Is(unicode.Cc, r) {
		return true
	}
	if unicode.Is(unicode.Zl, r) || unicode.Is(unicode.Zp, r) {
		return true
	}
	if unicode.Is(unicode.Cs, r) {
		return true
	}
	if unicode.Is(unicode.Zs, r) && r != ' ' {
		return true
	}
	return false
}

// Validate checks s against every label rule in spec section 6. Cf
// (format) characters are permitted but do not count toward the
// "at least one printable character" requirement.
func Validate(s string) error {
	if !utf8.ValidString(s) {
		return &egerrors.BadLabel{Label: s, Reason: "not valid UTF-8"}
	}
	if s == "" {
		return &egerrors.BadLabel{Label: s, Reason: "empty"}
	}

	runes := []rune(s)

	if runes[0] == ' ' || runes[len(runes)-1] == ' ' {
		return &egerrors.BadLabel{Label: s, Reason: "leading or trailing whitespace"}
	}

	printable := false
	prevSpace := false
	for _, r := range runes {
		if excludedCategory(r) {
			return &egerrors.BadLabel{Label: s, Reason: "contains an excluded Unicode category"}
		}
		if r == ' ' {
			if prevSpace {
				return &egerrors.BadLabel{Label: s, Reason: "repeated whitespace"}
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		if !unicode.Is(unicode.Cf, r) {
			printable = true
		}
	}

	if !printable {
		return &egerrors.BadLabel{Label: s, Reason: "no printable character"}
	}

	return nil
}

// Normalize trims and collapses internal whitespace runs to single
// spaces, a convenience for callers building labels programmatically; it
// does not itself guarantee the result validates (an all-format-character
// string would still fail Validate).
func Normalize(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
