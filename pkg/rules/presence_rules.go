package rules

import (
	"github.com/dmitrymomot/eventkit/pkg/event"
)

func required(c *Context, v any) bool {
	return !blank(c, v)
}

// requiredString accepts only scalar strings with visible content.
func requiredString(_ *Context, v any) bool {
	s, ok := text(v)
	return ok && !blankText(s)
}

// requiredMulti checks a localized value in c.Locale, or in every content
// language when no locale is given.
func requiredMulti(c *Context, v any) bool {
	l, ok := v.(event.LocalizedString)
	if !ok {
		return false
	}
	if c != nil && c.Locale != "" {
		return l.Filled(c.Locale)
	}
	if c == nil || len(c.Languages) == 0 {
		return !l.IsBlank()
	}
	for _, lang := range c.Languages {
		if !l.Filled(lang) {
			return false
		}
	}
	return true
}

// requiredInContentLanguage passes when at least one content language is filled.
func requiredInContentLanguage(c *Context, v any) bool {
	l, ok := v.(event.LocalizedString)
	if !ok || c == nil {
		return false
	}
	for _, lang := range c.Languages {
		if l.Filled(lang) {
			return true
		}
	}
	return false
}

func requiredAtID(_ *Context, v any) bool {
	switch x := v.(type) {
	case *event.Location:
		return x != nil && !blankText(x.ID)
	case event.Location:
		return !blankText(x.ID)
	case *event.Ref:
		return x != nil && !blankText(x.ID)
	case *event.Image:
		return x != nil && !blankText(x.ID)
	}
	s, ok := text(v)
	return ok && !blankText(s)
}

func requiredImage(_ *Context, v any) bool {
	img, ok := v.(*event.Image)
	return ok && img != nil && (!blankText(img.ID) || !blankText(img.URL))
}

// forCourses applies fn only to course and hobby events.
func forCourses(fn Func) Func {
	return func(c *Context, v any) bool {
		if c.record().EffectiveType() == event.TypeGeneral {
			return true
		}
		return fn(c, v)
	}
}

func isExisty(c *Context, v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case *event.Location:
		return x != nil
	case *event.Image:
		return x != nil
	case *string:
		return x != nil
	}
	return true
}

func isUndefined(c *Context, v any) bool {
	return !isExisty(c, v)
}

func isEmptyString(_ *Context, v any) bool {
	if v == nil {
		return true
	}
	s, ok := text(v)
	return ok && s == ""
}

func isTrue(_ *Context, v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func isFalse(_ *Context, v any) bool {
	b, ok := v.(bool)
	return ok && !b
}
