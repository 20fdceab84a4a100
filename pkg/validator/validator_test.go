package validator_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

var (
	testNow   = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	languages = []string{"fi", "en"}
	taxonomy  = keywordset.Taxonomy{
		{ID: "helsinki:topic_content", Keywords: []keywordset.Keyword{
			{ID: "yso:p1235", AtID: "https://api.hel.fi/linkedevents/v1/keyword/yso:p1235/"},
		}},
		{ID: "helsinki:coursetopics", Keywords: []keywordset.Keyword{{ID: "yso:p8000"}}},
		{ID: "helsinki:service_content", Keywords: []keywordset.Keyword{{ID: "yso:p3000"}}},
	}
)

func newValidator(opts ...validator.Option) *validator.Validator {
	return validator.New(append([]validator.Option{
		validator.WithClock(func() time.Time { return testNow }),
	}, opts...)...)
}

func validPublic() *event.Record {
	return &event.Record{
		Name:             event.LocalizedString{"fi": "Konsertti", "en": "Concert"},
		ShortDescription: event.LocalizedString{"fi": "Illan konsertti", "en": "Evening concert"},
		StartTime:        "2024-02-01T18:00:00Z",
		EndTime:          "2024-02-01T20:00:00Z",
		Location:         &event.Location{ID: "tko:1"},
		Keywords:         []event.Keyword{{Value: "https://api.hel.fi/linkedevents/v1/keyword/yso:p1235/"}},
	}
}

func rulesOf(names ...rules.Name) validator.FieldErrors {
	return validator.FieldErrors{Rules: names}
}

func nested(m validator.ErrorMap) validator.FieldErrors {
	return validator.FieldErrors{Nested: m}
}

func subEvents(n int) map[string]*event.Record {
	subs := make(map[string]*event.Record, n)
	for i := range n {
		day := testNow.AddDate(0, 0, i+1)
		subs[fmt.Sprint(i)] = &event.Record{
			StartTime: day.Format(time.RFC3339),
			EndTime:   day.Add(2 * time.Hour).Format(time.RFC3339),
		}
	}
	return subs
}

func TestValidPublicEvent(t *testing.T) {
	t.Parallel()

	errs := newValidator().Validate(validPublic(), languages, validator.IntentPublic, taxonomy)
	assert.Empty(t, errs)
	assert.True(t, errs.IsEmpty())
}

func TestMissingRequiredLocale(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.Name = event.LocalizedString{"fi": "Konsertti"}

	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"name": nested(validator.ErrorMap{"en": rulesOf(rules.RequiredMulti)}),
	}, errs)
}

func TestSubEventOrdering(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.SubEvents = map[string]*event.Record{
		"0": {StartTime: "2024-02-02T15:00:00Z", EndTime: "2024-02-02T12:00:00Z"},
	}

	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"sub_events": nested(validator.ErrorMap{
			"0": nested(validator.ErrorMap{"end_time": rulesOf(rules.AfterStartTime)}),
		}),
	}, errs)
}

func TestSubEventsInThePastAreNotFutureChecked(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.SubEvents = map[string]*event.Record{
		"0": {StartTime: "2020-02-02T10:00:00Z", EndTime: "2020-02-02T12:00:00Z"},
		"1": {EndTime: "2020-02-02T12:00:00Z"},
	}

	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"sub_events": nested(validator.ErrorMap{
			"1": nested(validator.ErrorMap{"start_time": rulesOf(rules.RequiredString)}),
		}),
	}, errs)
}

func TestVirtualEvent(t *testing.T) {
	t.Parallel()

	t.Run("no location required", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.Location = nil
		r.IsVirtualEvent = true
		r.VirtualEventURL = "https://meet.example.com/concert"

		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.False(t, errs.Has("location"))
		assert.False(t, errs.Has("virtualevent_url"))
		assert.Empty(t, errs)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.IsVirtualEvent = true
		r.VirtualEventURL = "meet the band"

		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, []rules.Name{rules.IsURL}, errs.Rules("virtualevent_url"))
	})

	t.Run("url on physical event is ignored", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.VirtualEventURL = "not a url"

		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.False(t, errs.Has("virtualevent_url"))
	})

	t.Run("physical event needs location", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.Location = nil

		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, validator.ErrorMap{"location": rulesOf(rules.RequiredAtID)}, errs)
	})
}

func TestSeriesLength(t *testing.T) {
	t.Parallel()

	container := func(n int) *event.Record {
		r := validPublic()
		r.StartTime, r.EndTime = "", ""
		r.SuperEventType = event.SuperEventRecurring
		r.SubEvents = subEvents(n)
		return r
	}

	tests := []struct {
		name string
		n    int
		want validator.ErrorMap
	}{
		{"too short", 1, validator.ErrorMap{"sub_length": rulesOf(rules.IsMoreThanTwo)}},
		{"lower bound", 2, validator.ErrorMap{}},
		{"upper bound", 65, validator.ErrorMap{}},
		{"too long", 67, validator.ErrorMap{"sub_length": rulesOf(rules.IsMoreThanSixtyFive)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := newValidator().Validate(container(tt.n), languages, validator.IntentPublic, taxonomy)
			assert.Equal(t, tt.want, errs)
		})
	}

	t.Run("not applied to events with own start time", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.SubEvents = subEvents(1)
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.False(t, errs.Has("sub_length"))
	})
}

func TestContainerTimes(t *testing.T) {
	t.Parallel()

	t.Run("container without times skips them", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.StartTime, r.EndTime = "", ""
		r.SubEvents = subEvents(3)
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.False(t, errs.Has("start_time"))
		assert.False(t, errs.Has("end_time"))
	})

	t.Run("container with own start time is checked like a leaf", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.StartTime, r.EndTime = "yesterday", ""
		r.SubEvents = subEvents(3)
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, []rules.Name{rules.IsDate}, errs.Rules("start_time"))
	})

	t.Run("plain event requires start time", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.StartTime = ""
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, []rules.Name{rules.RequiredString}, errs.Rules("start_time"))
	})
}

func TestPastEvents(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.StartTime = "2023-12-01T18:00:00Z"
	r.EndTime = "2023-12-01T20:00:00Z"
	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{"end_time": rulesOf(rules.InTheFuture)}, errs)

	r.EndTime = ""
	errs = newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{"start_time": rulesOf(rules.DefaultEndInTheFuture)}, errs)

	errs = newValidator().Validate(r, languages, validator.IntentDraft, taxonomy)
	assert.Empty(t, errs, "drafts may lie in the past")
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	t.Run("no main category", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.Keywords = []event.Keyword{{Value: "yso:p3000"}}
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, validator.ErrorMap{"keywords": rulesOf(rules.AtLeastOneMainCategory)}, errs)
	})

	t.Run("explicit general type needs secondary category", func(t *testing.T) {
		t.Parallel()
		r := validPublic()
		r.TypeID = event.TypeGeneral
		errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
		assert.Equal(t, validator.ErrorMap{"keywords": rulesOf(rules.AtLeastOneSecondaryCategory)}, errs)

		r.Keywords = append(r.Keywords, event.Keyword{Value: "yso:p3000"})
		assert.Empty(t, newValidator().Validate(r, languages, validator.IntentPublic, taxonomy))
	})

	t.Run("empty taxonomy fails main category", func(t *testing.T) {
		t.Parallel()
		errs := newValidator().Validate(validPublic(), languages, validator.IntentPublic, nil)
		assert.True(t, errs.Has("keywords"))
	})
}

func TestCourses(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.TypeID = event.TypeCourse
	r.Keywords = []event.Keyword{{Value: "yso:p8000"}}
	r.Provider = event.LocalizedString{"fi": "Opisto"}

	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"provider":             nested(validator.ErrorMap{"en": rulesOf(rules.RequiredMultiForCourses)}),
		"enrolment_start_time": rulesOf(rules.RequiredStringForCourses),
		"enrolment_end_time":   rulesOf(rules.RequiredStringForCourses),
	}, errs)

	r.Provider["en"] = "College"
	r.EnrolmentStartTime = "2024-01-10T00:00:00Z"
	r.EnrolmentEndTime = "2024-01-05T00:00:00Z"
	errs = newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"enrolment_end_time": rulesOf(rules.AfterEnrolmentStartTime),
	}, errs)
}

func TestAudienceAndCapacity(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.AudienceMinAge = "12"
	r.AudienceMaxAge = "7"
	r.MinimumAttendeeCapacity = "ten"

	errs := newValidator().Validate(r, languages, validator.IntentDraft, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"audience_min_age":          rulesOf(rules.IsLessThanMaxAge),
		"audience_max_age":          rulesOf(rules.IsMoreThanMinAge),
		"minimum_attendee_capacity": rulesOf(rules.IsInt),
	}, errs)
}

func TestOffers(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.Organization = "tprek:1"
	r.Offers = []event.Offer{
		{Price: event.LocalizedString{}},
		{IsFree: true},
		{Price: event.LocalizedString{"fi": "abc"}, InfoURL: event.LocalizedString{"fi": "tickets"}},
	}

	want := validator.ErrorMap{
		"offers": nested(validator.ErrorMap{
			"0": nested(validator.ErrorMap{"price": rulesOf(rules.HasPrice)}),
			"2": nested(validator.ErrorMap{
				"price":    rulesOf(rules.HasValidPrice),
				"info_url": rulesOf(rules.IsURL),
			}),
		}),
	}
	assert.Equal(t, want, newValidator().Validate(r, languages, validator.IntentPublic, taxonomy))

	t.Run("default exemption", func(t *testing.T) {
		t.Parallel()
		exempt := *r
		exempt.Organization = validator.DefaultOfferExemptOrganization
		errs := newValidator().Validate(&exempt, languages, validator.IntentPublic, taxonomy)
		assert.False(t, errs.Has("offers"))
	})

	t.Run("configured exemption", func(t *testing.T) {
		t.Parallel()
		v := newValidator(validator.WithOfferExemptOrganizations("tprek:1"))
		assert.False(t, v.Validate(r, languages, validator.IntentPublic, taxonomy).Has("offers"))

		other := *r
		other.Organization = validator.DefaultOfferExemptOrganization
		assert.True(t, v.Validate(&other, languages, validator.IntentPublic, taxonomy).Has("offers"))
	})
}

func TestVideos(t *testing.T) {
	t.Parallel()

	r := validPublic()
	r.Videos = []event.Video{
		{},
		{URL: "https://youtu.be/abc", Name: event.LocalizedString{"fi": "Traileri"}},
		{URL: "youtube", Name: event.LocalizedString{"fi": "a", "en": "b"}, AltText: event.LocalizedString{"fi": "c", "en": "d"}},
	}

	errs := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"videos": nested(validator.ErrorMap{
			"1": nested(validator.ErrorMap{
				"name":     rulesOf(rules.RequiredVideoField),
				"alt_text": rulesOf(rules.RequiredVideoField),
			}),
			"2": nested(validator.ErrorMap{"url": rulesOf(rules.IsURL)}),
		}),
	}, errs)

	draft := newValidator().Validate(r, languages, validator.IntentDraft, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"videos": nested(validator.ErrorMap{
			"2": nested(validator.ErrorMap{"url": rulesOf(rules.IsURL)}),
		}),
	}, draft)
}

func TestIntent(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IntentDraft.Valid())
	assert.True(t, validator.IntentPublic.Valid())
	assert.False(t, validator.Intent("archived").Valid())

	errs := newValidator().Validate(&event.Record{}, languages, "archived", taxonomy)
	assert.NotNil(t, errs)
	assert.Empty(t, errs)

	draft := newValidator().Validate(&event.Record{}, languages, validator.IntentDraft, taxonomy)
	assert.Equal(t, validator.ErrorMap{
		"name": nested(validator.ErrorMap{
			"fi": rulesOf(rules.RequiredMulti),
			"en": rulesOf(rules.RequiredMulti),
		}),
	}, draft)
}

func TestNilRecord(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		errs := validator.DoValidations(nil, languages, validator.IntentPublic, taxonomy)
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("location"))
	})
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	r := messyRecord()
	v := newValidator()

	first := v.Validate(r, languages, validator.IntentPublic, taxonomy)
	for range 20 {
		again := v.Validate(r, languages, validator.IntentPublic, taxonomy)
		require.Equal(t, first, again)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(again)
		require.NoError(t, err)
		require.JSONEq(t, string(a), string(b))
	}
}

func TestOmissionInvariant(t *testing.T) {
	t.Parallel()

	records := []*event.Record{messyRecord(), validPublic(), {}, {SubEvents: subEvents(3)}}
	for _, r := range records {
		for _, intent := range []validator.Intent{validator.IntentDraft, validator.IntentPublic} {
			assertNoEmpty(t, newValidator().Validate(r, languages, intent, taxonomy))
		}
	}
}

func assertNoEmpty(t *testing.T, m validator.ErrorMap) {
	t.Helper()
	for key, fe := range m {
		require.False(t, fe.IsEmpty(), "empty entry at %q", key)
		if fe.Nested != nil {
			require.NotEmpty(t, fe.Nested, "empty nested map at %q", key)
			assertNoEmpty(t, fe.Nested)
		}
	}
}

func TestDraftIsSubsetOfPublic(t *testing.T) {
	t.Parallel()

	records := []*event.Record{messyRecord(), validPublic(), {}, {SubEvents: subEvents(1)}}
	for _, r := range records {
		draft := newValidator().Validate(r, languages, validator.IntentDraft, taxonomy).Flatten()
		public := newValidator().Validate(r, languages, validator.IntentPublic, taxonomy).Flatten()
		for _, v := range draft {
			assert.Contains(t, public, v)
		}
	}
}

func messyRecord() *event.Record {
	return &event.Record{
		Name:              event.LocalizedString{"fi": string(make([]rune, 200))},
		Description:       event.LocalizedString{"en": "ok"},
		InfoURL:           event.LocalizedString{"fi": "www", "en": "https://example.com"},
		StartTime:         "2024-03-01T10:00:00Z",
		EndTime:           "2024-02-01T10:00:00Z",
		EnrolmentURL:      "enrol here",
		AudienceMinAge:    "x",
		ExtlinkFacebook:   "facebook",
		Keywords:          []event.Keyword{{Value: "nope"}},
		Offers:            []event.Offer{{Price: event.LocalizedString{"fi": "1.999"}}},
		Videos:            []event.Video{{URL: "https://v.example.com"}},
		LocationExtraInfo: event.LocalizedString{"fi": "ovi B"},
		SubEvents: map[string]*event.Record{
			"0":  {StartTime: "bad", EndTime: "2024-03-01T10:00:00Z"},
			"10": {StartTime: "2024-03-02T10:00:00Z", EndTime: "2024-03-01T10:00:00Z"},
			"2":  nil,
		},
	}
}
