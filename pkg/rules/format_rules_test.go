package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

func TestShapeRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule  rules.Name
		value string
		want  bool
	}{
		{rules.IsURL, "https://example.com/events/1", true},
		{rules.IsURL, "http://localhost:8080", true},
		{rules.IsURL, "example.com", false},
		{rules.IsURL, "ftp://example.com", false},
		{rules.IsURL, "not a url", false},

		{rules.IsEmail, "info@example.com", true},
		{rules.IsEmail, "info@", false},

		{rules.IsDate, "2024-02-02T15:00:00Z", true},
		{rules.IsDate, "2024-02-02T15:00:00.123+02:00", true},
		{rules.IsDate, "2024-02-02T15:00:00", true},
		{rules.IsDate, "2024-02-02", true},
		{rules.IsDate, "2.2.2024", true},
		{rules.IsDate, "02.02.2024", true},
		{rules.IsDate, "2024-13-01", false},
		{rules.IsDate, "tomorrow", false},

		{rules.IsTime, "09:30", true},
		{rules.IsTime, "9.30", true},
		{rules.IsTime, "23:59", true},
		{rules.IsTime, "24:00", false},
		{rules.IsTime, "12:60", false},

		{rules.IsInt, "42", true},
		{rules.IsInt, "-3", true},
		{rules.IsInt, "4.2", false},
		{rules.IsInt, "abc", false},

		{rules.IsNumeric, "4.2", true},
		{rules.IsNumeric, ".5", true},
		{rules.IsNumeric, "4,2", false},

		{rules.IsFloat, "1e3", true},
		{rules.IsFloat, "1.5", true},
		{rules.IsFloat, "x1", false},

		{rules.IsWords, "Hyvää päivää", true},
		{rules.IsWords, "room 101", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.rule)+"/"+tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.Check(tt.rule, &rules.Context{}, tt.value))
		})
	}
}

func TestShapeRulesOnLocalizedValues(t *testing.T) {
	t.Parallel()

	urls := event.LocalizedString{"fi": "https://example.fi", "en": "nope", "sv": ""}

	assert.False(t, rules.Check(rules.IsURL, &rules.Context{}, urls))
	assert.True(t, rules.Check(rules.IsURL, &rules.Context{Locale: "fi"}, urls))
	assert.False(t, rules.Check(rules.IsURL, &rules.Context{Locale: "en"}, urls))
	assert.True(t, rules.Check(rules.IsURL, &rules.Context{Locale: "sv"}, urls))
}

func TestShapeRulesOnNumbers(t *testing.T) {
	t.Parallel()

	assert.True(t, rules.Check(rules.IsInt, &rules.Context{}, event.Number("12")))
	assert.False(t, rules.Check(rules.IsInt, &rules.Context{}, event.Number("12a")))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	helsinki, err := time.LoadLocation("Europe/Helsinki")
	require.NoError(t, err)

	got, ok := rules.ParseDate("1.3.2024", helsinki)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, helsinki)))

	got, ok = rules.ParseDate("2024-03-01T10:00:00Z", helsinki)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	_, ok = rules.ParseDate("", nil)
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	m, ok := rules.ParseClock("18.45")
	require.True(t, ok)
	assert.Equal(t, 18*60+45, m)

	_, ok = rules.ParseClock("6pm")
	assert.False(t, ok)
}
