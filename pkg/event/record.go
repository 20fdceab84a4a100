package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
)

// Type is the editor's event type selector.
type Type string

const (
	TypeGeneral Type = "general"
	TypeCourse  Type = "course"
	TypeHobby   Type = "hobby"
)

// SuperEventType marks a record as a container for other events.
type SuperEventType string

const (
	SuperEventRecurring SuperEventType = "recurring"
	SuperEventUmbrella  SuperEventType = "umbrella"
)

// LocalizedString maps a locale code to text. Only selected content
// languages are present; an absent key and an empty value are both missing.
type LocalizedString map[string]string

// Get returns the value for lang or an empty string.
func (l LocalizedString) Get(lang string) string {
	if l == nil {
		return ""
	}
	return l[lang]
}

// Filled reports whether lang has a non-blank value.
func (l LocalizedString) Filled(lang string) bool {
	return strings.TrimSpace(l.Get(lang)) != ""
}

// IsBlank reports whether no locale carries a non-blank value.
func (l LocalizedString) IsBlank() bool {
	for _, v := range l {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Location references a place by its identifier.
type Location struct {
	ID   string          `json:"@id,omitempty"`
	Name LocalizedString `json:"name,omitempty"`
}

// Image references an uploaded image.
type Image struct {
	ID      string          `json:"@id,omitempty"`
	URL     string          `json:"url,omitempty"`
	Name    LocalizedString `json:"name,omitempty"`
	AltText LocalizedString `json:"alt_text,omitempty"`
}

// Keyword is a selected keyword as the editor keeps it.
type Keyword struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Offer is one price row of an event.
type Offer struct {
	IsFree      bool            `json:"is_free"`
	Price       LocalizedString `json:"price,omitempty"`
	InfoURL     LocalizedString `json:"info_url,omitempty"`
	Description LocalizedString `json:"description,omitempty"`
}

// Video is one video row of an event.
type Video struct {
	URL     string          `json:"url"`
	Name    LocalizedString `json:"name,omitempty"`
	AltText LocalizedString `json:"alt_text,omitempty"`
}

// IsBlank reports whether every field of the row is empty.
func (v Video) IsBlank() bool {
	return strings.TrimSpace(v.URL) == "" && v.Name.IsBlank() && v.AltText.IsBlank()
}

// Number is raw numeric input as typed into the editor. It decodes from a
// JSON number, a JSON string or null so that malformed input reaches the
// shape rules instead of failing decoding.
type Number string

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return err
		}
		*n = Number(num.String())
	}
	return nil
}

// String returns the raw input.
func (n Number) String() string { return string(n) }

// Int parses the input as an integer.
func (n Number) Int() (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Record is an event in editor format: the subject of validation.
type Record struct {
	ID string `json:"id,omitempty"`

	Name              LocalizedString `json:"name,omitempty"`
	ShortDescription  LocalizedString `json:"short_description,omitempty"`
	Description       LocalizedString `json:"description,omitempty"`
	InfoURL           LocalizedString `json:"info_url,omitempty"`
	Provider          LocalizedString `json:"provider,omitempty"`
	LocationExtraInfo LocalizedString `json:"location_extra_info,omitempty"`

	Location *Location `json:"location,omitempty"`
	Image    *Image    `json:"image,omitempty"`

	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	IsVirtualEvent  bool   `json:"is_virtualevent,omitempty"`
	VirtualEventURL string `json:"virtualevent_url,omitempty"`

	EnrolmentStartTime string `json:"enrolment_start_time,omitempty"`
	EnrolmentEndTime   string `json:"enrolment_end_time,omitempty"`
	EnrolmentURL       string `json:"enrolment_url,omitempty"`

	AudienceMinAge          Number `json:"audience_min_age,omitempty"`
	AudienceMaxAge          Number `json:"audience_max_age,omitempty"`
	MinimumAttendeeCapacity Number `json:"minimum_attendee_capacity,omitempty"`
	MaximumAttendeeCapacity Number `json:"maximum_attendee_capacity,omitempty"`

	ExtlinkFacebook  string `json:"extlink_facebook,omitempty"`
	ExtlinkTwitter   string `json:"extlink_twitter,omitempty"`
	ExtlinkInstagram string `json:"extlink_instagram,omitempty"`

	SuperEventType SuperEventType `json:"super_event_type,omitempty"`
	SubEventType   SuperEventType `json:"sub_event_type,omitempty"`
	TypeID         Type           `json:"type_id,omitempty"`
	Organization   string         `json:"organization,omitempty"`

	Keywords  []Keyword          `json:"keywords,omitempty"`
	Offers    []Offer            `json:"offers,omitempty"`
	Videos    []Video            `json:"videos,omitempty"`
	SubEvents map[string]*Record `json:"sub_events,omitempty"`
}

// HasSubEvents reports whether the record carries at least one sub-event.
func (r *Record) HasSubEvents() bool {
	return r != nil && len(r.SubEvents) > 0
}

// SubEventKeys returns sub-event keys in numeric order when the keys are
// numeric, lexical otherwise.
func (r *Record) SubEventKeys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.SubEvents))
	for k := range r.SubEvents {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai - bi
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// EffectiveType resolves the record's type, defaulting to general.
func (r *Record) EffectiveType() Type {
	if r == nil || r.TypeID == "" {
		return TypeGeneral
	}
	return r.TypeID
}

// Decode parses an editor-format record. Shape violations such as
// sub_events not being an object are reported as ErrInvalidRecord.
func Decode(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	return &r, nil
}
