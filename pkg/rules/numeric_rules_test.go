package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

func TestAgeBounds(t *testing.T) {
	t.Parallel()

	c := &rules.Context{Record: &event.Record{AudienceMinAge: "7", AudienceMaxAge: "12"}}

	assert.True(t, rules.Check(rules.IsLessThanMaxAge, c, event.Number("7")))
	assert.True(t, rules.Check(rules.IsLessThanMaxAge, c, event.Number("12")))
	assert.False(t, rules.Check(rules.IsLessThanMaxAge, c, event.Number("13")))
	assert.True(t, rules.Check(rules.IsMoreThanMinAge, c, event.Number("12")))
	assert.False(t, rules.Check(rules.IsMoreThanMinAge, c, event.Number("6")))

	t.Run("missing or malformed bound passes", func(t *testing.T) {
		t.Parallel()
		open := &rules.Context{Record: &event.Record{AudienceMaxAge: "x"}}
		assert.True(t, rules.Check(rules.IsLessThanMaxAge, open, event.Number("99")))
		assert.True(t, rules.Check(rules.IsLessThanMaxAge, c, event.Number("")))
	})
}

func TestCapacityBounds(t *testing.T) {
	t.Parallel()

	c := &rules.Context{Record: &event.Record{MinimumAttendeeCapacity: "10", MaximumAttendeeCapacity: "5"}}
	assert.False(t, rules.Check(rules.IsLessThanMaximumCapacity, c, event.Number("10")))
	assert.False(t, rules.Check(rules.IsMoreThanMinimumCapacity, c, event.Number("5")))
	assert.True(t, rules.Check(rules.IsMoreThanMinimumCapacity, c, 20))
}

func TestSeriesLength(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	assert.False(t, rules.Check(rules.IsMoreThanTwo, c, 1))
	assert.True(t, rules.Check(rules.IsMoreThanTwo, c, 2))
	assert.True(t, rules.Check(rules.IsMoreThanSixtyFive, c, 65))
	assert.False(t, rules.Check(rules.IsMoreThanSixtyFive, c, 66))

	subs := map[string]*event.Record{"0": {}, "1": {}, "2": {}}
	assert.True(t, rules.Check(rules.IsMoreThanTwo, c, subs))
	assert.False(t, rules.Check(rules.IsMoreThanTwo, c, "3"))
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	short := make([]rune, rules.ShortLength)
	for i := range short {
		short[i] = 'ä'
	}
	assert.True(t, rules.Check(rules.ShortString, c, string(short)), "limit counts characters, not bytes")
	assert.False(t, rules.Check(rules.ShortString, c, string(short)+"x"))
	assert.True(t, rules.Check(rules.MediumString, c, string(short)+"x"))

	desc := event.LocalizedString{"fi": "lyhyt", "en": string(make([]byte, rules.LongLength+1))}
	assert.False(t, rules.Check(rules.LongString, c, desc))
	assert.True(t, rules.Check(rules.LongString, &rules.Context{Locale: "fi"}, desc))
}
