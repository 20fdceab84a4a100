package validator

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

// pass holds the inputs of one validation call.
type pass struct {
	languages []string
	taxonomy  keywordset.Taxonomy
	now       time.Time
	exempt    map[string]struct{}
}

func (p *pass) context(r *event.Record) *rules.Context {
	return &rules.Context{
		Record:    r,
		Languages: p.languages,
		Taxonomy:  p.taxonomy,
		Now:       p.now,
	}
}

func (p *pass) table(t *Table, r *event.Record) ErrorMap {
	out := ErrorMap{}
	for _, e := range t.entries {
		if fe := p.entry(e, r); !fe.IsEmpty() {
			out[e.Field] = fe
		}
	}
	return out
}

func (p *pass) entry(e Entry, r *event.Record) FieldErrors {
	c := p.context(r)
	c.Field = e.Field
	value := recordFields[e.Field]

	switch e.Kind {
	case KindContainer:
		return p.container(e, r)

	case KindLocation:
		if r.IsVirtualEvent {
			return FieldErrors{}
		}
		return flat(c, e.Rules, value(r))

	case KindSeriesLength:
		if !r.HasSubEvents() || !blank(r.StartTime) {
			return FieldErrors{}
		}
		return flat(c, e.Rules, len(r.SubEvents))

	case KindTimePair:
		v, _ := value(r).(string)
		if r.HasSubEvents() && blank(v) {
			return FieldErrors{}
		}
		return flat(c, e.Rules, v)

	case KindVirtualURL:
		if !r.IsVirtualEvent || blank(r.VirtualEventURL) {
			return FieldErrors{}
		}
		return flat(c, e.Rules, r.VirtualEventURL)

	case KindCategory:
		rs := e.Rules
		if r.TypeID == event.TypeGeneral && !slices.Contains(rs, rules.AtLeastOneSecondaryCategory) {
			rs = append(slices.Clip(rs), rules.AtLeastOneSecondaryCategory)
		}
		return flat(c, rs, r.Keywords)

	case KindOffers:
		return p.offers(e, r)

	case KindVideos:
		return p.videos(e, r)

	case KindMultiLocale:
		return perLocale(c, e.Rules, value(r), p.languages)

	default:
		return flat(c, e.Rules, value(r))
	}
}

func (p *pass) container(e Entry, r *event.Record) FieldErrors {
	nested := ErrorMap{}
	for _, key := range r.SubEventKeys() {
		sub := r.SubEvents[key]
		if sub == nil {
			sub = &event.Record{}
		}
		if m := p.table(e.sub, sub); !m.IsEmpty() {
			nested[key] = FieldErrors{Nested: m}
		}
	}
	return FieldErrors{Nested: nested}
}

func (p *pass) offers(e Entry, r *event.Record) FieldErrors {
	if _, ok := p.exempt[r.Organization]; ok {
		return FieldErrors{}
	}
	nested := ErrorMap{}
	for i := range r.Offers {
		offer := &r.Offers[i]
		row := ErrorMap{}
		for _, f := range e.Fields {
			c := p.context(r)
			c.Offer, c.Field = offer, f.Field
			if fe := flat(c, f.Rules, offerValue(offer, f.Field)); !fe.IsEmpty() {
				row[f.Field] = fe
			}
		}
		if !row.IsEmpty() {
			nested[strconv.Itoa(i)] = FieldErrors{Nested: row}
		}
	}
	return FieldErrors{Nested: nested}
}

// videos reports localized sub-fields as one list: a rule fails for the
// field when it fails in any content language.
func (p *pass) videos(e Entry, r *event.Record) FieldErrors {
	nested := ErrorMap{}
	for i := range r.Videos {
		video := &r.Videos[i]
		row := ErrorMap{}
		for _, f := range e.Fields {
			c := p.context(r)
			c.Video, c.Field = video, f.Field
			v := videoValue(video, f.Field)

			var fe FieldErrors
			if f.Kind == KindMultiLocale {
				fe = anyLocale(c, f.Rules, v, p.languages)
			} else {
				fe = flat(c, f.Rules, v)
			}
			if !fe.IsEmpty() {
				row[f.Field] = fe
			}
		}
		if !row.IsEmpty() {
			nested[strconv.Itoa(i)] = FieldErrors{Nested: row}
		}
	}
	return FieldErrors{Nested: nested}
}

// flat runs rs against v and keeps the failures in rule order.
func flat(c *rules.Context, rs []rules.Name, v any) FieldErrors {
	var failed []rules.Name
	for _, n := range rs {
		if !rules.Check(n, c, v) {
			failed = append(failed, n)
		}
	}
	return FieldErrors{Rules: failed}
}

// perLocale runs rs once per language and keys the failures by locale.
func perLocale(c *rules.Context, rs []rules.Name, v any, languages []string) FieldErrors {
	nested := ErrorMap{}
	for _, lang := range languages {
		lc := *c
		lc.Locale = lang
		if fe := flat(&lc, rs, v); !fe.IsEmpty() {
			nested[lang] = fe
		}
	}
	return FieldErrors{Nested: nested}
}

func anyLocale(c *rules.Context, rs []rules.Name, v any, languages []string) FieldErrors {
	var failed []rules.Name
	for _, n := range rs {
		for _, lang := range languages {
			lc := *c
			lc.Locale = lang
			if !rules.Check(n, &lc, v) {
				failed = append(failed, n)
				break
			}
		}
	}
	return FieldErrors{Rules: failed}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
