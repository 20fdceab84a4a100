package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"whitespace", "  ", false},
		{"string", "x", true},
		{"empty number", event.Number(""), false},
		{"number", event.Number("0"), true},
		{"nil location", (*event.Location)(nil), false},
		{"empty location", &event.Location{}, false},
		{"location", &event.Location{ID: "tprek:1"}, true},
		{"empty localized", event.LocalizedString{"fi": ""}, false},
		{"localized", event.LocalizedString{"fi": "Nimi"}, true},
		{"no keywords", []event.Keyword{}, false},
		{"keywords", []event.Keyword{{Value: "yso:p1"}}, true},
		{"false is present", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.Check(rules.Required, c, tt.value))
		})
	}
}

func TestRequiredString(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	assert.True(t, rules.Check(rules.RequiredString, c, "2024-01-01"))
	assert.False(t, rules.Check(rules.RequiredString, c, ""))
	assert.False(t, rules.Check(rules.RequiredString, c, " "))
	assert.False(t, rules.Check(rules.RequiredString, c, nil))
	assert.False(t, rules.Check(rules.RequiredString, c, event.LocalizedString{"fi": "x"}))
}

func TestRequiredMulti(t *testing.T) {
	t.Parallel()

	name := event.LocalizedString{"fi": "Konsertti", "en": ""}

	t.Run("locale scoped", func(t *testing.T) {
		t.Parallel()
		assert.True(t, rules.Check(rules.RequiredMulti, &rules.Context{Locale: "fi"}, name))
		assert.False(t, rules.Check(rules.RequiredMulti, &rules.Context{Locale: "en"}, name))
		assert.False(t, rules.Check(rules.RequiredMulti, &rules.Context{Locale: "sv"}, name))
	})

	t.Run("all content languages", func(t *testing.T) {
		t.Parallel()
		assert.True(t, rules.Check(rules.RequiredMulti, &rules.Context{Languages: []string{"fi"}}, name))
		assert.False(t, rules.Check(rules.RequiredMulti, &rules.Context{Languages: []string{"fi", "en"}}, name))
	})

	t.Run("not localized", func(t *testing.T) {
		t.Parallel()
		assert.False(t, rules.Check(rules.RequiredMulti, &rules.Context{Locale: "fi"}, "Konsertti"))
	})
}

func TestRequiredInContentLanguage(t *testing.T) {
	t.Parallel()

	c := &rules.Context{Languages: []string{"fi", "sv"}}
	assert.True(t, rules.Check(rules.RequiredInContentLanguage, c, event.LocalizedString{"sv": "Namn"}))
	assert.False(t, rules.Check(rules.RequiredInContentLanguage, c, event.LocalizedString{"en": "Name"}))
}

func TestRequiredAtID(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	assert.True(t, rules.Check(rules.RequiredAtID, c, &event.Location{ID: "tko:1"}))
	assert.False(t, rules.Check(rules.RequiredAtID, c, &event.Location{Name: event.LocalizedString{"fi": "Talo"}}))
	assert.False(t, rules.Check(rules.RequiredAtID, c, (*event.Location)(nil)))
	assert.False(t, rules.Check(rules.RequiredAtID, c, nil))
}

func TestRequiredImage(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	assert.True(t, rules.Check(rules.RequiredImage, c, &event.Image{ID: "https://api/image/1/"}))
	assert.True(t, rules.Check(rules.RequiredImage, c, &event.Image{URL: "https://img/1.jpg"}))
	assert.False(t, rules.Check(rules.RequiredImage, c, &event.Image{}))
	assert.False(t, rules.Check(rules.RequiredImage, c, nil))
}

func TestForCourses(t *testing.T) {
	t.Parallel()

	general := &rules.Context{Record: &event.Record{}}
	course := &rules.Context{Record: &event.Record{TypeID: event.TypeCourse}}
	hobby := &rules.Context{Record: &event.Record{TypeID: event.TypeHobby}, Locale: "fi"}

	assert.True(t, rules.Check(rules.RequiredForCourses, general, nil))
	assert.False(t, rules.Check(rules.RequiredForCourses, course, nil))

	assert.True(t, rules.Check(rules.RequiredStringForCourses, general, ""))
	assert.False(t, rules.Check(rules.RequiredStringForCourses, course, ""))
	assert.True(t, rules.Check(rules.RequiredStringForCourses, course, "2024-01-01"))

	assert.False(t, rules.Check(rules.RequiredMultiForCourses, hobby, event.LocalizedString{"sv": "x"}))
	assert.True(t, rules.Check(rules.RequiredMultiForCourses, hobby, event.LocalizedString{"fi": "x"}))
}

func TestBooleanAndExistence(t *testing.T) {
	t.Parallel()

	c := &rules.Context{}
	assert.True(t, rules.Check(rules.IsTrue, c, true))
	assert.False(t, rules.Check(rules.IsTrue, c, "true"))
	assert.True(t, rules.Check(rules.IsFalse, c, false))
	assert.False(t, rules.Check(rules.IsFalse, c, nil))

	assert.True(t, rules.Check(rules.IsExisty, c, ""))
	assert.False(t, rules.Check(rules.IsExisty, c, nil))
	assert.False(t, rules.Check(rules.IsExisty, c, (*event.Location)(nil)))
	assert.True(t, rules.Check(rules.IsUndefined, c, nil))
	assert.False(t, rules.Check(rules.IsUndefined, c, "x"))

	assert.True(t, rules.Check(rules.IsEmptyString, c, ""))
	assert.True(t, rules.Check(rules.IsEmptyString, c, nil))
	assert.False(t, rules.Check(rules.IsEmptyString, c, " "))
}
