package i18n

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/eventkit/pkg/cache"
	"github.com/dmitrymomot/eventkit/pkg/logger"
)

// DefaultLanguage is used when negotiation finds no supported language.
const DefaultLanguage = "fi"

//go:embed messages/*.yaml
var embedded embed.FS

// Translator holds message bundles. The bundles are fixed after New; the
// translator is safe for concurrent use.
type Translator struct {
	messages    map[string]map[string]string
	defaultLang string
	languages   []string
	matcher     language.Matcher
	matchOrder  []string
	matches     *cache.LRU[string, string]
	log         *slog.Logger
	extra       []fs.FS
	strict      bool
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the fallback language. It must be one of the
// loaded bundles; otherwise New fails.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithBundles layers the YAML files found at the root of fsys over the
// embedded bundles. Later bundles win key by key.
func WithBundles(fsys fs.FS) Option {
	return func(t *Translator) {
		if fsys != nil {
			t.extra = append(t.extra, fsys)
		}
	}
}

// WithLogger sets the logger used to report missing messages.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// WithMissingMessagesLogging logs every lookup that falls back.
func WithMissingMessagesLogging(enabled bool) Option {
	return func(t *Translator) {
		t.strict = enabled
	}
}

// New loads the embedded bundles and any added with WithBundles.
func New(opts ...Option) (*Translator, error) {
	t := &Translator{
		messages:    make(map[string]map[string]string),
		defaultLang: DefaultLanguage,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	sub, err := fs.Sub(embedded, "messages")
	if err != nil {
		return nil, errors.Join(ErrFailedToReadBundle, err)
	}
	for _, fsys := range append([]fs.FS{sub}, t.extra...) {
		if err := t.load(fsys); err != nil {
			return nil, err
		}
	}

	if _, ok := t.messages[t.defaultLang]; !ok {
		return nil, errors.Join(ErrLanguageNotSupported, errors.New(t.defaultLang))
	}

	t.languages = slices.Sorted(maps.Keys(t.messages))
	// The default language goes first so that it is the matcher's fallback.
	t.matchOrder = append([]string{t.defaultLang}, slices.DeleteFunc(slices.Clone(t.languages), func(l string) bool {
		return l == t.defaultLang
	})...)
	tags := make([]language.Tag, 0, len(t.matchOrder))
	for _, lang := range t.matchOrder {
		tags = append(tags, language.Make(lang))
	}
	t.matcher = language.NewMatcher(tags)
	t.matches = cache.NewLRU[string, string](matchCacheSize)

	return t, nil
}

func (t *Translator) load(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return errors.Join(ErrFailedToReadBundle, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml":
		default:
			continue
		}

		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return errors.Join(ErrFailedToReadBundle, err)
		}
		bundle, err := parseBundle(content)
		if err != nil {
			return errors.Join(err, errors.New(entry.Name()))
		}
		for lang, msgs := range bundle {
			if t.messages[lang] == nil {
				t.messages[lang] = make(map[string]string, len(msgs))
			}
			maps.Copy(t.messages[lang], msgs)
		}
		loaded++
	}

	if loaded == 0 {
		return ErrNoBundles
	}
	return nil
}

// Languages returns the loaded languages, sorted.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Supports reports whether a bundle exists for lang.
func (t *Translator) Supports(lang string) bool {
	_, ok := t.messages[strings.ToLower(lang)]
	return ok
}

// Has reports whether lang has its own message for key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.messages[strings.ToLower(lang)][key]
	return ok
}

// Messages returns a copy of every message of lang.
func (t *Translator) Messages(lang string) (map[string]string, error) {
	msgs, ok := t.messages[strings.ToLower(lang)]
	if !ok {
		return nil, errors.Join(ErrLanguageNotSupported, errors.New(lang))
	}
	return maps.Clone(msgs), nil
}

// T returns the message for key in lang with "%{name}" placeholders
// replaced from args, given as name, value pairs. A missing message falls
// back to the default language and then to the key.
func (t *Translator) T(lang, key string, args ...string) string {
	lang = strings.ToLower(lang)
	msg, ok := t.messages[lang][key]
	if !ok {
		if t.strict {
			t.log.Warn("message not found", slog.String("lang", lang), slog.String("key", key))
		}
		msg, ok = t.messages[t.defaultLang][key]
	}
	if !ok {
		msg = key
	}
	return substitute(msg, args)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
