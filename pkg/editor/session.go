package editor

import (
	"errors"
	"slices"
	"sync"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// TaxonomySource returns the keyword taxonomy to validate against.
// *keywordset.Store satisfies it.
type TaxonomySource interface {
	Get() keywordset.Taxonomy
}

type staticTaxonomy keywordset.Taxonomy

func (t staticTaxonomy) Get() keywordset.Taxonomy { return keywordset.Taxonomy(t) }

// Session holds one record under edit together with the errors of the
// last check.
type Session struct {
	mu sync.Mutex

	record    *event.Record
	languages []string
	taxonomy  TaxonomySource
	validator *validator.Validator

	intent  validator.Intent
	errs    validator.ErrorMap
	checked bool
	checks  int
}

// Option configures a Session.
type Option func(*Session)

// WithLanguages sets the content languages the record is written in.
func WithLanguages(langs ...string) Option {
	return func(s *Session) {
		s.languages = slices.Clone(langs)
	}
}

// WithTaxonomy sets where the keyword taxonomy comes from. Every check reads
// the current snapshot, so a reloaded taxonomy applies to the next check.
func WithTaxonomy(src TaxonomySource) Option {
	return func(s *Session) {
		if src != nil {
			s.taxonomy = src
		}
	}
}

// WithStaticTaxonomy validates against a fixed taxonomy.
func WithStaticTaxonomy(t keywordset.Taxonomy) Option {
	return WithTaxonomy(staticTaxonomy(t))
}

// WithValidator sets the validator. Defaults to validator.New().
func WithValidator(v *validator.Validator) Option {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// NewSession starts editing r. A nil record starts an empty form. The
// session's intent is draft until Check is called with another one.
func NewSession(r *event.Record, opts ...Option) *Session {
	if r == nil {
		r = &event.Record{}
	}
	s := &Session{
		record:    r,
		taxonomy:  staticTaxonomy(nil),
		validator: validator.New(),
		intent:    validator.IntentDraft,
		errs:      validator.ErrorMap{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Edit applies fn to the record. When the last check reported errors the
// record is re-validated with the same intent, otherwise the stored result
// is kept as is. It returns the current errors.
func (s *Session) Edit(fn func(r *event.Record)) validator.ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fn != nil {
		fn(s.record)
	}
	if !s.errs.IsEmpty() {
		s.validate()
	}
	return s.errs
}

// SetLanguages changes the content languages. Like Edit it re-validates
// only when errors are known.
func (s *Session) SetLanguages(langs ...string) validator.ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.languages = slices.Clone(langs)
	if !s.errs.IsEmpty() {
		s.validate()
	}
	return s.errs
}

// Check validates the record for intent and remembers the intent for
// subsequent edits.
func (s *Session) Check(intent validator.Intent) validator.ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intent = intent
	s.validate()
	return s.errs
}

// Submit runs Check and hands out the record when it passes. On failure
// the returned error wraps ErrNotValid and the ErrorMap.
func (s *Session) Submit(intent validator.Intent) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intent = intent
	s.validate()
	if !s.errs.IsEmpty() {
		return nil, errors.Join(ErrNotValid, s.errs)
	}
	out := *s.record
	return &out, nil
}

// Errors returns the result of the last check. The map is replaced, never
// modified, by later checks; callers must not modify it either.
func (s *Session) Errors() validator.ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

// Valid reports whether the record has been checked and passed.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked && s.errs.IsEmpty()
}

// Intent returns the intent of the last check.
func (s *Session) Intent() validator.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intent
}

// Checks returns how many times the record has been validated.
func (s *Session) Checks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}

func (s *Session) validate() {
	s.errs = s.validator.Validate(s.record, s.languages, s.intent, s.taxonomy.Get())
	s.checked = true
	s.checks++
}
