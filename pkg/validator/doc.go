// Package validator decides which fields of an event record are invalid and
// why.
//
// Validation is table driven. A Table lists fields with the names of the
// rules from package rules that apply to them; DraftTable and PublicTable
// are the two built-in tables, public being the stricter. When a table is
// built every field gets a Kind that fixes how it is evaluated:
// localized fields run once per content language, location is skipped for
// virtual events, start_time and end_time are skipped on container events
// that have no times of their own, offers and videos are evaluated row by
// row, and sub_events runs a nested table against every sub-event.
//
// The result is an ErrorMap:
//
//	errs := validator.DoValidations(record, []string{"fi", "en"}, validator.IntentPublic, taxonomy)
//	// {"name": {"en": ["requiredMulti"]}, "sub_events": {"0": {"end_time": ["afterStartTime"]}}}
//
// A field missing from the map is valid and no entry is ever empty. The
// same inputs always produce the same map; use WithClock to pin the time
// the future-date rules compare against.
package validator
