package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	// maxAcceptLanguageLength caps the header before parsing.
	maxAcceptLanguageLength = 4096
	// matchCacheSize bounds the memoised header to language results.
	matchCacheSize = 512
)

// Match picks the best supported language for an Accept-Language header
// or a single language code. Regional variants match their base language
// ("sv-FI" matches "sv"). Anything unmatched yields the default language.
func (t *Translator) Match(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return t.defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	if t.matches == nil {
		return t.match(header)
	}
	return t.matches.GetOrCompute(header, func() string { return t.match(header) })
}

func (t *Translator) match(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(t.matchOrder) {
		return t.defaultLang
	}
	return t.matchOrder[idx]
}
