package rules

import "unicode/utf8"

// Length limits in characters.
const (
	ShortLength  = 160
	MediumLength = 320
	LongLength   = 5000
)

// maxRunes limits the length of a string, or of every value of a localized
// string in scope.
func maxRunes(limit int) Func {
	return func(c *Context, v any) bool {
		for _, s := range texts(c, v) {
			if utf8.RuneCountInString(s) > limit {
				return false
			}
		}
		return true
	}
}
