package event

import (
	"errors"
	"fmt"
	"strings"
)

// Ref is a JSON-LD reference to another API resource.
type Ref struct {
	ID string `json:"@id"`
}

// ExternalLink is a social-media link attached to an event in the API.
type ExternalLink struct {
	Name     string `json:"name"`
	Link     string `json:"link"`
	Language string `json:"language,omitempty"`
}

// Names of the external links the editor exposes as scalar fields.
const (
	LinkFacebook  = "extlink_facebook"
	LinkTwitter   = "extlink_twitter"
	LinkInstagram = "extlink_instagram"
)

// WireEvent is an event as the catalog API sends and accepts it.
type WireEvent struct {
	ID string `json:"id,omitempty"`

	Name              LocalizedString `json:"name,omitempty"`
	ShortDescription  LocalizedString `json:"short_description,omitempty"`
	Description       LocalizedString `json:"description,omitempty"`
	InfoURL           LocalizedString `json:"info_url,omitempty"`
	Provider          LocalizedString `json:"provider,omitempty"`
	LocationExtraInfo LocalizedString `json:"location_extra_info,omitempty"`

	Location *Ref  `json:"location,omitempty"`
	Keywords []Ref `json:"keywords"`
	Images   []Ref `json:"images,omitempty"`

	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	IsVirtualEvent  bool    `json:"is_virtualevent"`
	VirtualEventURL *string `json:"virtualevent_url,omitempty"`

	EnrolmentStartTime *string `json:"enrolment_start_time,omitempty"`
	EnrolmentEndTime   *string `json:"enrolment_end_time,omitempty"`
	EnrolmentURL       *string `json:"enrolment_url,omitempty"`

	AudienceMinAge          *int `json:"audience_min_age,omitempty"`
	AudienceMaxAge          *int `json:"audience_max_age,omitempty"`
	MinimumAttendeeCapacity *int `json:"minimum_attendee_capacity,omitempty"`
	MaximumAttendeeCapacity *int `json:"maximum_attendee_capacity,omitempty"`

	ExternalLinks []ExternalLink `json:"external_links,omitempty"`

	SuperEventType *string `json:"super_event_type"`
	SuperEvent     *Ref    `json:"super_event,omitempty"`
	SubEvents      []Ref   `json:"sub_events,omitempty"`

	TypeID            string `json:"type_id,omitempty"`
	Publisher         string `json:"publisher,omitempty"`
	PublicationStatus string `json:"publication_status,omitempty"`

	Offers []Offer `json:"offers,omitempty"`
	Videos []Video `json:"videos,omitempty"`
}

var wireTypes = map[string]Type{
	"General": TypeGeneral,
	"Course":  TypeCourse,
	"Hobby":   TypeHobby,
}

// FromWire maps an API event into editor format.
func FromWire(w *WireEvent) (*Record, error) {
	if w == nil {
		return nil, errors.Join(ErrInvalidWireEvent, errors.New("nil event"))
	}

	r := &Record{
		ID:                 w.ID,
		Name:               w.Name,
		ShortDescription:   w.ShortDescription,
		Description:        w.Description,
		InfoURL:            w.InfoURL,
		Provider:           w.Provider,
		LocationExtraInfo:  w.LocationExtraInfo,
		StartTime:          deref(w.StartTime),
		EndTime:            deref(w.EndTime),
		IsVirtualEvent:     w.IsVirtualEvent,
		VirtualEventURL:    deref(w.VirtualEventURL),
		EnrolmentStartTime: deref(w.EnrolmentStartTime),
		EnrolmentEndTime:   deref(w.EnrolmentEndTime),
		EnrolmentURL:       deref(w.EnrolmentURL),

		AudienceMinAge:          intToNumber(w.AudienceMinAge),
		AudienceMaxAge:          intToNumber(w.AudienceMaxAge),
		MinimumAttendeeCapacity: intToNumber(w.MinimumAttendeeCapacity),
		MaximumAttendeeCapacity: intToNumber(w.MaximumAttendeeCapacity),

		SuperEventType: SuperEventType(deref(w.SuperEventType)),
		Organization:   w.Publisher,
		Offers:         w.Offers,
		Videos:         w.Videos,
	}

	if w.Location != nil && w.Location.ID != "" {
		r.Location = &Location{ID: w.Location.ID}
	}
	if len(w.Images) > 0 && w.Images[0].ID != "" {
		r.Image = &Image{ID: w.Images[0].ID}
	}
	if w.TypeID != "" {
		if t, ok := wireTypes[w.TypeID]; ok {
			r.TypeID = t
		} else {
			r.TypeID = Type(strings.ToLower(w.TypeID))
		}
	}

	for _, kw := range w.Keywords {
		if kw.ID == "" {
			continue
		}
		r.Keywords = append(r.Keywords, Keyword{Value: kw.ID, Label: kw.ID})
	}

	for _, link := range w.ExternalLinks {
		switch link.Name {
		case LinkFacebook:
			r.ExtlinkFacebook = link.Link
		case LinkTwitter:
			r.ExtlinkTwitter = link.Link
		case LinkInstagram:
			r.ExtlinkInstagram = link.Link
		}
	}

	return r, nil
}

// ToWire maps an editor record into the API shape. Sub-events are not
// included; use SubEventsToWire once the parent has an identifier.
func ToWire(r *Record) (*WireEvent, error) {
	if r == nil {
		return nil, errors.Join(ErrInvalidRecord, errors.New("nil record"))
	}

	w := &WireEvent{
		ID:                 r.ID,
		Name:               r.Name,
		ShortDescription:   r.ShortDescription,
		Description:        r.Description,
		InfoURL:            r.InfoURL,
		Provider:           r.Provider,
		LocationExtraInfo:  r.LocationExtraInfo,
		Keywords:           make([]Ref, 0, len(r.Keywords)),
		StartTime:          ptr(r.StartTime),
		EndTime:            ptr(r.EndTime),
		IsVirtualEvent:     r.IsVirtualEvent,
		VirtualEventURL:    ptr(r.VirtualEventURL),
		EnrolmentStartTime: ptr(r.EnrolmentStartTime),
		EnrolmentEndTime:   ptr(r.EnrolmentEndTime),
		EnrolmentURL:       ptr(r.EnrolmentURL),
		SuperEventType:     ptr(string(r.SuperEventType)),
		Publisher:          r.Organization,
		Offers:             r.Offers,
		Videos:             nonBlankVideos(r.Videos),
	}

	numbers := []struct {
		field string
		in    Number
		out   **int
	}{
		{"audience_min_age", r.AudienceMinAge, &w.AudienceMinAge},
		{"audience_max_age", r.AudienceMaxAge, &w.AudienceMaxAge},
		{"minimum_attendee_capacity", r.MinimumAttendeeCapacity, &w.MinimumAttendeeCapacity},
		{"maximum_attendee_capacity", r.MaximumAttendeeCapacity, &w.MaximumAttendeeCapacity},
	}
	for _, n := range numbers {
		if strings.TrimSpace(n.in.String()) == "" {
			continue
		}
		v, ok := n.in.Int()
		if !ok {
			return nil, errors.Join(ErrInvalidNumber, fmt.Errorf("%s: %q", n.field, n.in))
		}
		*n.out = &v
	}

	if r.Location != nil && r.Location.ID != "" && !r.IsVirtualEvent {
		w.Location = &Ref{ID: r.Location.ID}
	}
	if r.Image != nil && r.Image.ID != "" {
		w.Images = []Ref{{ID: r.Image.ID}}
	}
	if r.TypeID != "" {
		w.TypeID = wireTypeName(r.TypeID)
	}
	for _, kw := range r.Keywords {
		if kw.Value != "" {
			w.Keywords = append(w.Keywords, Ref{ID: kw.Value})
		}
	}

	links := []ExternalLink{
		{Name: LinkFacebook, Link: r.ExtlinkFacebook},
		{Name: LinkTwitter, Link: r.ExtlinkTwitter},
		{Name: LinkInstagram, Link: r.ExtlinkInstagram},
	}
	for _, l := range links {
		if strings.TrimSpace(l.Link) != "" {
			l.Language = "fi"
			w.ExternalLinks = append(w.ExternalLinks, l)
		}
	}

	return w, nil
}

// SubEventsToWire produces one API event per sub-event of r, in key order.
// Each inherits the parent's content and references superEventID.
func SubEventsToWire(r *Record, superEventID string) ([]*WireEvent, error) {
	if r == nil {
		return nil, errors.Join(ErrInvalidRecord, errors.New("nil record"))
	}

	base := *r
	base.ID = ""
	base.SubEvents = nil
	base.SuperEventType = ""

	events := make([]*WireEvent, 0, len(r.SubEvents))
	for _, key := range r.SubEventKeys() {
		sub := r.SubEvents[key]
		if sub == nil {
			continue
		}
		child := base
		child.StartTime = sub.StartTime
		child.EndTime = sub.EndTime

		w, err := ToWire(&child)
		if err != nil {
			return nil, fmt.Errorf("sub-event %s: %w", key, err)
		}
		if superEventID != "" {
			w.SuperEvent = &Ref{ID: superEventID}
		}
		events = append(events, w)
	}
	return events, nil
}

func wireTypeName(t Type) string {
	for name, typ := range wireTypes {
		if typ == t {
			return name
		}
	}
	return string(t)
}

func nonBlankVideos(videos []Video) []Video {
	var out []Video
	for _, v := range videos {
		if !v.IsBlank() {
			out = append(out, v)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intToNumber(v *int) Number {
	if v == nil {
		return ""
	}
	return Number(fmt.Sprint(*v))
}
