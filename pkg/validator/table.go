package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

// Kind is the evaluation strategy of a table entry. It is derived from the
// field name when a table is built.
type Kind uint8

const (
	// KindScalar runs rules against the field value.
	KindScalar Kind = iota
	// KindMultiLocale runs rules once per content language.
	KindMultiLocale
	// KindTimePair is start_time/end_time, skipped on containers without own times.
	KindTimePair
	// KindLocation is skipped for virtual events.
	KindLocation
	// KindVirtualURL applies only to virtual events with a URL.
	KindVirtualURL
	// KindSeriesLength counts sub-events of a container.
	KindSeriesLength
	// KindCategory checks keywords against the taxonomy.
	KindCategory
	// KindDirect is an audience or attendee number.
	KindDirect
	// KindOffers evaluates every offer row.
	KindOffers
	// KindVideos evaluates every video row.
	KindVideos
	// KindContainer runs a nested table against every sub-event.
	KindContainer
)

var kindNames = [...]string{
	KindScalar:       "scalar",
	KindMultiLocale:  "multi_locale",
	KindTimePair:     "time_pair",
	KindLocation:     "location",
	KindVirtualURL:   "virtual_url",
	KindSeriesLength: "series_length",
	KindCategory:     "category",
	KindDirect:       "direct",
	KindOffers:       "offers",
	KindVideos:       "videos",
	KindContainer:    "container",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + fmt.Sprint(uint8(k)) + ")"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one row of a rule table: a field with its rule list, or a group
// of sub-fields for structured fields.
type Entry struct {
	Field  string       `json:"field" yaml:"field"`
	Kind   Kind         `json:"kind" yaml:"kind"`
	Rules  []rules.Name `json:"rules,omitempty" yaml:"rules,omitempty"`
	Fields []Entry      `json:"fields,omitempty" yaml:"fields,omitempty"`

	group bool
	sub   *Table
}

// Field declares a field checked with rs, in order.
func Field(name string, rs ...rules.Name) Entry {
	return Entry{Field: name, Rules: rs}
}

// Group declares a structured field (offers, videos, sub_events) with its
// sub-field entries.
func Group(name string, fields ...Entry) Entry {
	return Entry{Field: name, Fields: fields, group: true}
}

// Table is an immutable, ordered rule table.
type Table struct {
	entries []Entry
}

// Entries returns the table rows in declaration order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds the entry for field.
func (t *Table) Lookup(field string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	for _, e := range t.entries {
		if e.Field == field {
			return e, true
		}
	}
	return Entry{}, false
}

// NewTable checks entries and resolves the kind of every field. Unknown
// fields, unknown rule names and misplaced groups are errors.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{entries: make([]Entry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Field] {
			return nil, errors.Join(ErrDuplicate, fmt.Errorf("%q", e.Field))
		}
		seen[e.Field] = true

		resolved, err := resolve(e)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.Field, err)
		}
		t.entries = append(t.entries, resolved)
	}
	return t, nil
}

// MustTable is NewTable for tables declared at package level.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

func resolve(e Entry) (Entry, error) {
	if err := checkRules(e.Rules); err != nil {
		return Entry{}, err
	}

	if e.group {
		switch e.Field {
		case "sub_events":
			sub, err := NewTable(e.Fields...)
			if err != nil {
				return Entry{}, err
			}
			e.Kind, e.sub, e.Fields = KindContainer, sub, sub.Entries()
		case "offers":
			fields, err := rowFields(e.Fields, offerFields)
			if err != nil {
				return Entry{}, err
			}
			e.Kind, e.Fields = KindOffers, fields
		case "videos":
			fields, err := rowFields(e.Fields, videoFields)
			if err != nil {
				return Entry{}, err
			}
			e.Kind, e.Fields = KindVideos, fields
		default:
			return Entry{}, ErrInvalidGroup
		}
		return e, nil
	}

	if _, ok := recordFields[e.Field]; !ok {
		return Entry{}, ErrUnknownField
	}
	e.Kind = fieldKind(e.Field)
	return e, nil
}

func fieldKind(name string) Kind {
	switch name {
	case "sub_events", "offers", "videos":
		// only reachable without a group; evaluated as plain values
		return KindScalar
	case "location":
		return KindLocation
	case "sub_length":
		return KindSeriesLength
	case "start_time", "end_time":
		return KindTimePair
	case "virtualevent_url":
		return KindVirtualURL
	case "keywords":
		return KindCategory
	case "name", "short_description", "description", "info_url", "provider", "location_extra_info":
		return KindMultiLocale
	}
	if strings.Contains(name, "audience") || strings.Contains(name, "attendee") {
		return KindDirect
	}
	return KindScalar
}

func checkRules(rs []rules.Name) error {
	for _, r := range rs {
		if !r.Valid() {
			return errors.Join(ErrUnknownRule, fmt.Errorf("%q", r))
		}
	}
	return nil
}

func rowFields(entries []Entry, known map[string]Kind) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		kind, ok := known[e.Field]
		if !ok || e.group {
			return nil, errors.Join(ErrUnknownField, fmt.Errorf("%q", e.Field))
		}
		if err := checkRules(e.Rules); err != nil {
			return nil, err
		}
		e.Kind = kind
		out = append(out, e)
	}
	return out, nil
}

var offerFields = map[string]Kind{
	"is_free":     KindScalar,
	"price":       KindScalar,
	"info_url":    KindScalar,
	"description": KindScalar,
}

var videoFields = map[string]Kind{
	"url":      KindScalar,
	"name":     KindMultiLocale,
	"alt_text": KindMultiLocale,
}

func offerValue(o *event.Offer, field string) any {
	switch field {
	case "is_free":
		return o.IsFree
	case "price":
		return o.Price
	case "info_url":
		return o.InfoURL
	case "description":
		return o.Description
	}
	return nil
}

func videoValue(v *event.Video, field string) any {
	switch field {
	case "url":
		return v.URL
	case "name":
		return v.Name
	case "alt_text":
		return v.AltText
	}
	return nil
}

// recordFields reads editor-format fields by name.
var recordFields = map[string]func(*event.Record) any{
	"name":                      func(r *event.Record) any { return r.Name },
	"short_description":         func(r *event.Record) any { return r.ShortDescription },
	"description":               func(r *event.Record) any { return r.Description },
	"info_url":                  func(r *event.Record) any { return r.InfoURL },
	"provider":                  func(r *event.Record) any { return r.Provider },
	"location_extra_info":       func(r *event.Record) any { return r.LocationExtraInfo },
	"location":                  func(r *event.Record) any { return r.Location },
	"image":                     func(r *event.Record) any { return r.Image },
	"start_time":                func(r *event.Record) any { return r.StartTime },
	"end_time":                  func(r *event.Record) any { return r.EndTime },
	"is_virtualevent":           func(r *event.Record) any { return r.IsVirtualEvent },
	"virtualevent_url":          func(r *event.Record) any { return r.VirtualEventURL },
	"enrolment_start_time":      func(r *event.Record) any { return r.EnrolmentStartTime },
	"enrolment_end_time":        func(r *event.Record) any { return r.EnrolmentEndTime },
	"enrolment_url":             func(r *event.Record) any { return r.EnrolmentURL },
	"audience_min_age":          func(r *event.Record) any { return r.AudienceMinAge },
	"audience_max_age":          func(r *event.Record) any { return r.AudienceMaxAge },
	"minimum_attendee_capacity": func(r *event.Record) any { return r.MinimumAttendeeCapacity },
	"maximum_attendee_capacity": func(r *event.Record) any { return r.MaximumAttendeeCapacity },
	"extlink_facebook":          func(r *event.Record) any { return r.ExtlinkFacebook },
	"extlink_twitter":           func(r *event.Record) any { return r.ExtlinkTwitter },
	"extlink_instagram":         func(r *event.Record) any { return r.ExtlinkInstagram },
	"super_event_type":          func(r *event.Record) any { return r.SuperEventType },
	"sub_event_type":            func(r *event.Record) any { return r.SubEventType },
	"type_id":                   func(r *event.Record) any { return r.TypeID },
	"organization":              func(r *event.Record) any { return r.Organization },
	"keywords":                  func(r *event.Record) any { return r.Keywords },
	"offers":                    func(r *event.Record) any { return r.Offers },
	"videos":                    func(r *event.Record) any { return r.Videos },
	"sub_events":                func(r *event.Record) any { return r.SubEvents },
	"sub_length":                func(r *event.Record) any { return len(r.SubEvents) },
}
