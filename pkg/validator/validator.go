package validator

import (
	"time"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
)

// Intent selects the rule table.
type Intent string

const (
	IntentDraft  Intent = "draft"
	IntentPublic Intent = "public"
)

func (i Intent) Valid() bool {
	return i == IntentDraft || i == IntentPublic
}

// DefaultOfferExemptOrganization publishes offers that are never checked.
const DefaultOfferExemptOrganization = "ahjo:u480400"

// Validator evaluates records against the draft and public tables.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	tables map[Intent]*Table
	clock  func() time.Time
	exempt map[string]struct{}
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source for rules relative to now. The clock is
// read once per call.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.clock = now
		}
	}
}

// WithOfferExemptOrganizations replaces the organizations whose offers are
// not validated.
func WithOfferExemptOrganizations(ids ...string) Option {
	return func(v *Validator) {
		v.exempt = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if id != "" {
				v.exempt[id] = struct{}{}
			}
		}
	}
}

// WithTable replaces the table used for intent.
func WithTable(intent Intent, t *Table) Option {
	return func(v *Validator) {
		if t != nil {
			v.tables[intent] = t
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{
		tables: map[Intent]*Table{
			IntentDraft:  draftTable,
			IntentPublic: publicTable,
		},
		clock:  time.Now,
		exempt: map[string]struct{}{DefaultOfferExemptOrganization: {}},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Table returns the table for intent.
func (v *Validator) Table(intent Intent) (*Table, bool) {
	t, ok := v.tables[intent]
	return t, ok
}

// Validate checks r in the given content languages. An intent without a
// table yields an empty map. A nil record is validated as an empty one.
func (v *Validator) Validate(r *event.Record, languages []string, intent Intent, taxonomy keywordset.Taxonomy) ErrorMap {
	t, ok := v.tables[intent]
	if !ok {
		return ErrorMap{}
	}
	if r == nil {
		r = &event.Record{}
	}
	p := &pass{
		languages: languages,
		taxonomy:  taxonomy,
		now:       v.clock(),
		exempt:    v.exempt,
	}
	return p.table(t, r)
}

var defaultValidator = New()

// DoValidations validates r with the default tables and the system clock.
func DoValidations(r *event.Record, languages []string, intent Intent, taxonomy keywordset.Taxonomy) ErrorMap {
	return defaultValidator.Validate(r, languages, intent, taxonomy)
}
