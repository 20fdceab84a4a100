package validator

import r "github.com/dmitrymomot/eventkit/pkg/rules"

// draftTable checks shape only, so incomplete events can be saved.
var draftTable = MustTable(
	Field("name", r.RequiredMulti, r.ShortString),
	Field("short_description", r.ShortString),
	Field("description", r.LongString),
	Field("info_url", r.IsURL),
	Field("provider", r.ShortString),
	Field("location_extra_info", r.ShortString),
	Field("extlink_facebook", r.IsURL),
	Field("extlink_twitter", r.IsURL),
	Field("extlink_instagram", r.IsURL),
	Field("start_time", r.IsDate),
	Field("end_time", r.AfterStartTime, r.IsDate),
	Field("enrolment_start_time", r.IsDate),
	Field("enrolment_end_time", r.IsDate, r.AfterEnrolmentStartTime),
	Field("enrolment_url", r.IsURL),
	Field("audience_min_age", r.IsInt, r.IsLessThanMaxAge),
	Field("audience_max_age", r.IsInt, r.IsMoreThanMinAge),
	Field("minimum_attendee_capacity", r.IsInt, r.IsLessThanMaximumCapacity),
	Field("maximum_attendee_capacity", r.IsInt, r.IsMoreThanMinimumCapacity),
	Field("virtualevent_url", r.IsURL),
	Group("offers",
		Field("price", r.HasValidPrice),
		Field("info_url", r.IsURL),
		Field("description", r.MediumString),
	),
	Group("videos",
		Field("url", r.IsURL),
		Field("name", r.MediumString),
		Field("alt_text", r.MediumString),
	),
	Group("sub_events",
		Field("start_time", r.IsDate),
		Field("end_time", r.AfterStartTime, r.IsDate),
	),
)

// publicTable is what an event must satisfy to be published.
var publicTable = MustTable(
	Field("name", r.RequiredMulti, r.ShortString),
	Field("short_description", r.RequiredMulti, r.ShortString),
	Field("description", r.LongString),
	Field("info_url", r.IsURL),
	Field("provider", r.RequiredMultiForCourses, r.ShortString),
	Field("location_extra_info", r.ShortString),
	Field("location", r.RequiredAtID),
	Field("extlink_facebook", r.IsURL),
	Field("extlink_twitter", r.IsURL),
	Field("extlink_instagram", r.IsURL),
	Field("start_time", r.RequiredString, r.IsDate, r.DefaultEndInTheFuture),
	Field("end_time", r.AfterStartTime, r.IsDate, r.InTheFuture),
	Field("enrolment_start_time", r.RequiredStringForCourses, r.IsDate),
	Field("enrolment_end_time", r.RequiredStringForCourses, r.IsDate, r.AfterEnrolmentStartTime),
	Field("enrolment_url", r.IsURL),
	Field("audience_min_age", r.IsInt, r.IsLessThanMaxAge),
	Field("audience_max_age", r.IsInt, r.IsMoreThanMinAge),
	Field("minimum_attendee_capacity", r.IsInt, r.IsLessThanMaximumCapacity),
	Field("maximum_attendee_capacity", r.IsInt, r.IsMoreThanMinimumCapacity),
	Field("virtualevent_url", r.IsURL),
	Field("keywords", r.AtLeastOneMainCategory),
	Group("offers",
		Field("price", r.HasPrice, r.HasValidPrice),
		Field("info_url", r.IsURL),
		Field("description", r.MediumString),
	),
	Group("videos",
		Field("url", r.RequiredVideoField, r.IsURL),
		Field("name", r.RequiredVideoField, r.MediumString),
		Field("alt_text", r.RequiredVideoField, r.MediumString),
	),
	Group("sub_events",
		Field("start_time", r.RequiredString, r.IsDate),
		Field("end_time", r.AfterStartTime, r.IsDate),
	),
	Field("sub_length", r.IsMoreThanTwo, r.IsMoreThanSixtyFive),
)

// DraftTable returns the rules applied when saving a draft.
func DraftTable() *Table { return draftTable }

// PublicTable returns the rules applied when publishing.
func PublicTable() *Table { return publicTable }
