package rules

import (
	"strings"

	"github.com/dmitrymomot/eventkit/pkg/event"
)

// text extracts a scalar string from the value types the engine passes.
func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case event.Number:
		return string(x), true
	case event.Type:
		return string(x), true
	case event.SuperEventType:
		return string(x), true
	case *string:
		if x == nil {
			return "", true
		}
		return *x, true
	default:
		return "", false
	}
}

func blankText(s string) bool {
	return strings.TrimSpace(s) == ""
}

// texts returns the strings a localized or scalar value holds, scoped to
// c.Locale when set.
func texts(c *Context, v any) []string {
	if l, ok := v.(event.LocalizedString); ok {
		if c != nil && c.Locale != "" {
			return []string{l.Get(c.Locale)}
		}
		out := make([]string, 0, len(l))
		for _, s := range l {
			out = append(out, s)
		}
		return out
	}
	if s, ok := text(v); ok {
		return []string{s}
	}
	return nil
}

// blank reports whether v carries nothing a presence rule would accept.
func blank(c *Context, v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case event.LocalizedString:
		if c != nil && c.Locale != "" {
			return !x.Filled(c.Locale)
		}
		return x.IsBlank()
	case *event.Location:
		return x == nil || (blankText(x.ID) && x.Name.IsBlank())
	case *event.Image:
		return x == nil || (blankText(x.ID) && blankText(x.URL))
	case []event.Keyword:
		return len(x) == 0
	case []event.Offer:
		return len(x) == 0
	case []event.Video:
		return len(x) == 0
	case map[string]*event.Record:
		return len(x) == 0
	case map[string]bool:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case bool, int:
		return false
	}
	if s, ok := text(v); ok {
		return blankText(s)
	}
	return false
}

// count returns the number of elements of a collection value, or the value
// itself when it already is a count.
func count(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case map[string]*event.Record:
		return len(x), true
	case []event.Keyword:
		return len(x), true
	case []event.Offer:
		return len(x), true
	case []event.Video:
		return len(x), true
	case []string:
		return len(x), true
	case map[string]bool:
		return len(x), true
	default:
		return 0, false
	}
}
