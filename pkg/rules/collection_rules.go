package rules

import (
	"strings"

	"github.com/dmitrymomot/eventkit/pkg/event"
)

func atLeastOne(_ *Context, v any) bool {
	n, ok := count(v)
	if ok {
		return n > 0
	}
	if l, ok := v.(event.LocalizedString); ok {
		return len(l) > 0
	}
	return false
}

func atLeastOneIsTrue(_ *Context, v any) bool {
	switch x := v.(type) {
	case map[string]bool:
		for _, on := range x {
			if on {
				return true
			}
		}
	case []bool:
		for _, on := range x {
			if on {
				return true
			}
		}
	}
	return false
}

// requiredVideoField requires the field named by c.Field of a video row that
// is not entirely blank. Blank rows pass on every field.
func requiredVideoField(c *Context, v any) bool {
	if c == nil || c.Video == nil || c.Video.IsBlank() {
		return true
	}
	switch c.Field {
	case "url":
		return !blankText(c.Video.URL)
	case "name":
		return localizedFilled(c, c.Video.Name)
	case "alt_text":
		return localizedFilled(c, c.Video.AltText)
	default:
		return required(c, v)
	}
}

func localizedFilled(c *Context, l event.LocalizedString) bool {
	if c.Locale != "" {
		return l.Filled(c.Locale)
	}
	return requiredMulti(c, l)
}

// hasPrice requires a price on offers that are not free. The price must be
// filled in at least one content language.
func hasPrice(c *Context, v any) bool {
	if c == nil || c.Offer == nil || c.Offer.IsFree {
		return true
	}
	price, ok := v.(event.LocalizedString)
	if !ok {
		price = c.Offer.Price
	}
	if len(c.Languages) == 0 {
		return !price.IsBlank()
	}
	for _, lang := range c.Languages {
		if price.Filled(lang) {
			return true
		}
	}
	return false
}

// hasValidPrice checks the shape of every filled price: digits with an
// optional comma or dot and at most two decimals. Free offers pass.
func hasValidPrice(c *Context, v any) bool {
	if c != nil && c.Offer != nil && c.Offer.IsFree {
		return true
	}
	for _, s := range texts(c, v) {
		s = strings.TrimSpace(s)
		if s != "" && !pricePattern.MatchString(s) {
			return false
		}
	}
	return true
}
