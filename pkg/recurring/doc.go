// Package recurring turns the recurring-event form into sub-events.
//
// A Recurrence names a date range, a daily time slot, the weekdays on which
// the event happens and a week interval. Validate checks the form with the
// shared rule library; Expand walks a cron schedule built from the weekdays
// and start time, keeping every interval-th week; SubEvents and Attach
// produce the {start_time, end_time} records the validator expects under
// sub_events.
package recurring
