package i18n

import (
	"strconv"

	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// Message is one failed rule rendered for a reader.
type Message struct {
	Path string     `json:"path"`
	Rule rules.Name `json:"rule"`
	Text string     `json:"message"`
}

// MessageKey returns the bundle key of rule.
func MessageKey(rule rules.Name) string {
	return "validation." + string(rule)
}

var ruleParams = map[rules.Name][]string{
	rules.ShortString:         {"max", strconv.Itoa(rules.ShortLength)},
	rules.MediumString:        {"max", strconv.Itoa(rules.MediumLength)},
	rules.LongString:          {"max", strconv.Itoa(rules.LongLength)},
	rules.IsMoreThanTwo:       {"min", strconv.Itoa(rules.MinSeriesLength)},
	rules.IsMoreThanSixtyFive: {"max", strconv.Itoa(rules.MaxSeriesLength)},
}

// Describe returns the message for a single rule.
func (t *Translator) Describe(rule rules.Name, lang string) string {
	return t.T(lang, MessageKey(rule), ruleParams[rule]...)
}

// Localize renders every failure of errs in lang, ordered by path and
// then by rule order.
func (t *Translator) Localize(errs validator.ErrorMap, lang string) []Message {
	violations := errs.Flatten()
	out := make([]Message, 0, len(violations))
	for _, v := range violations {
		out = append(out, Message{
			Path: v.Path,
			Rule: v.Rule,
			Text: t.Describe(v.Rule, lang),
		})
	}
	return out
}
