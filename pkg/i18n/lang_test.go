package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventkit/pkg/i18n"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", "fi"},
		{"exact", "sv", "sv"},
		{"region", "en-GB", "en"},
		{"swedish in finland", "sv-FI,sv;q=0.9", "sv"},
		{"quality order", "fi;q=0.3, en;q=0.8", "en"},
		{"first supported", "de-DE, en;q=0.5", "en"},
		{"unsupported", "ja", "fi"},
		{"malformed", ";;;", "fi"},
		{"oversized", strings.Repeat("x", 5000), "fi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.Match(tt.header))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	var got string
	h := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	t.Run("accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "sv-SE,en;q=0.5")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "sv", got)
	})

	t.Run("query parameter wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		req.Header.Set("Accept-Language", "sv")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "en", got)
	})

	t.Run("default", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fi", got)
	})
}

func TestGetLocaleWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(req.Context()))
}
