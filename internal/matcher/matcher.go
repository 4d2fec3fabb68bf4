// Package matcher decides whether a typed answer matches the expected one.
//
// Answers are compared through a normalized key: trimmed, lowercased, with
// the œ/æ ligatures expanded, accents removed and a fixed punctuation set
// stripped. The key is only ever used for comparison. What gets shown to the
// learner is always the original expected answer.
package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

var ligatures = strings.NewReplacer("œ", "oe", "æ", "ae")

// Hyphens separate words ("est-il" reads as "est il"); the rest of the set is
// dropped outright so "l'eau" and "leau" compare equal.
var punctuation = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
	"'", "", `"`, "", "(", "", ")", "", "-", " ",
)

// Normalize returns the comparison key for s. It is deterministic and
// idempotent.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = ligatures.Replace(s)
	s = stripMarks(s)
	s = punctuation.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Match reports whether input is a correct answer for expected. Blank input
// is never correct.
func Match(input, expected string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	key := Normalize(input)
	return key != "" && key == Normalize(expected)
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
