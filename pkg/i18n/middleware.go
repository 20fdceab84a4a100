package i18n

import (
	"context"
	"net/http"
	"strings"
)

type localeContextKey struct{}

// SetLocale stores lang in ctx.
func SetLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// GetLocale returns the language stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	lang, _ := ctx.Value(localeContextKey{}).(string)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// QueryParamName is checked before the Accept-Language header.
const QueryParamName = "lang"

// Middleware negotiates the response language for every request.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Accept-Language")
			if q := strings.TrimSpace(r.URL.Query().Get(QueryParamName)); q != "" {
				header = q
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), t.Match(header))))
		})
	}
}
