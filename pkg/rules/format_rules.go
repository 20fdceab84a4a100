package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	intPattern     = regexp.MustCompile(`^[-+]?\d+$`)
	numericPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)
	wordsPattern   = regexp.MustCompile(`^[\p{L}\s]+$`)
	clockPattern   = regexp.MustCompile(`^([01]?\d|2[0-3])[:.]([0-5]\d)$`)
	pricePattern   = regexp.MustCompile(`^\d+([.,]\d{1,2})?$`)
)

// Accepted date layouts: ISO-8601 datetimes with or without zone, plain
// dates and the editor's day.month.year form.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2.1.2006 15:04",
	"2.1.2006 15.04",
	"2.1.2006",
}

// shape lifts a string predicate into a rule where blank input passes and
// anything else must match. Localized values must match in every non-blank
// locale considered.
func shape(match func(string) bool) Func {
	return func(c *Context, v any) bool {
		for _, s := range texts(c, v) {
			s = strings.TrimSpace(s)
			if s != "" && !match(s) {
				return false
			}
		}
		return true
	}
}

func isURL(s string) bool {
	return validate.Var(s, "http_url") == nil
}

func isEmail(s string) bool {
	return validate.Var(s, "email") == nil
}

func isDate(s string) bool {
	_, ok := ParseDate(s, time.UTC)
	return ok
}

func isClock(s string) bool {
	return clockPattern.MatchString(s)
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ParseDate parses any accepted date shape. Values without a zone are read
// in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock parses HH:MM or HH.MM into minutes after midnight.
func ParseClock(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, true
}

// dateOnly reports whether s carries no time of day.
func dateOnly(s string) bool {
	s = strings.TrimSpace(s)
	return !strings.ContainsAny(s, "T ") && !strings.Contains(s, ":")
}
