package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New(opts...)
	require.NoError(t, err)
	return tr
}

func TestEveryRuleHasAMessageInEveryLanguage(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	require.Equal(t, []string{"en", "fi", "sv"}, tr.Languages())

	for _, lang := range tr.Languages() {
		for _, name := range rules.All() {
			assert.True(t, tr.Has(lang, i18n.MessageKey(name)), "%s: no message for %s", lang, name)
		}
	}
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	t.Run("placeholders", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "The text may be at most 160 characters long", tr.Describe(rules.ShortString, "en"))
		assert.Equal(t, "Teksti voi olla enintään 5000 merkkiä pitkä", tr.Describe(rules.LongString, "fi"))
		assert.Equal(t, "Ett återkommande evenemang kan ha högst 65 tillfällen", tr.Describe(rules.IsMoreThanSixtyFive, "sv"))
	})

	t.Run("unknown placeholder is kept", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "The text may be at most %{max} characters long",
			tr.T("en", "validation.shortString", "min", "1"))
	})

	t.Run("unsupported language falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, tr.T("fi", "validation.required"), tr.T("de", "validation.required"))
	})

	t.Run("unknown key falls back to key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "validation.nope", tr.T("en", "validation.nope"))
	})

	t.Run("language is case insensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, tr.T("en", "validation.isUrl"), tr.T("EN", "validation.isUrl"))
	})
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	msgs, err := tr.Messages("sv")
	require.NoError(t, err)
	assert.Len(t, msgs, len(rules.All()))
	assert.Equal(t, "Välj ett värde i listan", msgs["validation.requiredAtId"])

	msgs["validation.requiredAtId"] = "changed"
	again, err := tr.Messages("sv")
	require.NoError(t, err)
	assert.Equal(t, "Välj ett värde i listan", again["validation.requiredAtId"])

	_, err = tr.Messages("de")
	assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)
}

func TestWithBundles(t *testing.T) {
	t.Parallel()

	t.Run("overrides and adds languages", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.yaml": {Data: []byte("en:\n  validation:\n    required: \"Please fill in\"\n")},
			"de.yml":  {Data: []byte("de:\n  validation:\n    required: \"Pflichtfeld\"\n")},
			"README":  {Data: []byte("ignored")},
		}
		tr := newTranslator(t, i18n.WithBundles(fsys))

		assert.Equal(t, "Please fill in", tr.T("en", "validation.required"))
		assert.Equal(t, "Enter a valid email address", tr.T("en", "validation.isEmail"))
		assert.Equal(t, "Pflichtfeld", tr.T("de", "validation.required"))
		assert.Equal(t, tr.T("fi", "validation.isEmail"), tr.T("de", "validation.isEmail"))
		assert.Contains(t, tr.Languages(), "de")
	})

	t.Run("malformed bundle", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"en.yaml": {Data: []byte("en: [1, 2]\n")}}
		_, err := i18n.New(i18n.WithBundles(fsys))
		assert.ErrorIs(t, err, i18n.ErrInvalidBundle)
	})

	t.Run("no bundles", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithBundles(fstest.MapFS{}))
		assert.ErrorIs(t, err, i18n.ErrNoBundles)
	})
}

func TestDefaultLanguageMustBeLoaded(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(i18n.WithDefaultLanguage("de"))
	assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)

	tr := newTranslator(t, i18n.WithDefaultLanguage("EN"))
	assert.Equal(t, "en", tr.DefaultLanguage())
}

func TestLocalize(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	errs := validator.ErrorMap{
		"name": {Nested: validator.ErrorMap{
			"en": {Rules: []rules.Name{rules.RequiredMulti, rules.ShortString}},
		}},
		"location": {Rules: []rules.Name{rules.RequiredAtID}},
	}

	msgs := tr.Localize(errs, "en")
	assert.Equal(t, []i18n.Message{
		{Path: "location", Rule: rules.RequiredAtID, Text: "Select a value from the list"},
		{Path: "name.en", Rule: rules.RequiredMulti, Text: "This field is required in every selected language"},
		{Path: "name.en", Rule: rules.ShortString, Text: "The text may be at most 160 characters long"},
	}, msgs)

	assert.Empty(t, tr.Localize(validator.ErrorMap{}, "en"))
}
