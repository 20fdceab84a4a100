package recurring

import (
	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

type field struct {
	name  string
	rules []rules.Name
	value func(*event.Recurrence) any
}

var form = []field{
	{"start_date", []rules.Name{rules.RequiredString, rules.IsDate}, func(r *event.Recurrence) any { return r.StartDate }},
	{"end_date", []rules.Name{rules.RequiredString, rules.IsDate, rules.AfterStartTime}, func(r *event.Recurrence) any { return r.EndDate }},
	{"start_time", []rules.Name{rules.RequiredString, rules.IsTime}, func(r *event.Recurrence) any { return r.StartTime }},
	{"end_time", []rules.Name{rules.RequiredString, rules.IsTime, rules.AfterStartTime}, func(r *event.Recurrence) any { return r.EndTime }},
	{"days", []rules.Name{rules.AtLeastOneIsTrue, rules.DaysWithinInterval}, func(r *event.Recurrence) any { return r.Days }},
}

// Validate checks the recurrence form. Errors use the same shape as
// record validation.
func Validate(rec event.Recurrence) validator.ErrorMap {
	errs := validator.ErrorMap{}
	for _, f := range form {
		c := &rules.Context{Recurrence: &rec, Field: f.name}
		var failed []rules.Name
		for _, n := range f.rules {
			if !rules.Check(n, c, f.value(&rec)) {
				failed = append(failed, n)
			}
		}
		if len(failed) > 0 {
			errs[f.name] = validator.FieldErrors{Rules: failed}
		}
	}
	return errs
}
