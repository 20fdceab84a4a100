package rules

import "github.com/dmitrymomot/eventkit/pkg/event"

// Series length bounds for recurring events.
const (
	MinSeriesLength = 2
	MaxSeriesLength = 65
)

// notAbove passes when the value is at most the record's bound.
// Missing or non-integer operands pass; isInt reports those.
func notAbove(bound func(*event.Record) event.Number) Func {
	return func(c *Context, v any) bool {
		val, b, ok := operands(c, v, bound)
		return !ok || val <= b
	}
}

// notBelow passes when the value is at least the record's bound.
func notBelow(bound func(*event.Record) event.Number) Func {
	return func(c *Context, v any) bool {
		val, b, ok := operands(c, v, bound)
		return !ok || val >= b
	}
}

func operands(c *Context, v any, bound func(*event.Record) event.Number) (int, int, bool) {
	var val int
	switch x := v.(type) {
	case int:
		val = x
	default:
		s, ok := text(v)
		if !ok {
			return 0, 0, false
		}
		n, ok := event.Number(s).Int()
		if !ok {
			return 0, 0, false
		}
		val = n
	}
	b, ok := bound(c.record()).Int()
	if !ok {
		return 0, 0, false
	}
	return val, b, true
}

func minCount(n int) Func {
	return func(_ *Context, v any) bool {
		got, ok := count(v)
		return ok && got >= n
	}
}

func maxCount(n int) Func {
	return func(_ *Context, v any) bool {
		got, ok := count(v)
		return ok && got <= n
	}
}
