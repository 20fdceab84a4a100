package rules

import "time"

// afterStartTime checks that an end value is not before its start
// counterpart: the record's start_time, or for a recurrence form the
// start_date/start_time matching the field under test. Blank or unparsable
// bounds pass; isDate and isTime report those.
func afterStartTime(c *Context, v any) bool {
	end, ok := text(v)
	if !ok {
		return true
	}
	if c != nil && c.Recurrence != nil {
		rec := c.Recurrence
		switch c.Field {
		case "end_time":
			return notBefore(rec.StartTime, end, rec.Zone())
		default:
			return notBefore(rec.StartDate, end, rec.Zone())
		}
	}
	return notBefore(c.record().StartTime, end, time.UTC)
}

func afterEnrolmentStartTime(c *Context, v any) bool {
	end, ok := text(v)
	if !ok {
		return true
	}
	return notBefore(c.record().EnrolmentStartTime, end, time.UTC)
}

func notBefore(start, end string, loc *time.Location) bool {
	if blankText(start) || blankText(end) {
		return true
	}
	if s, ok := ParseDate(start, loc); ok {
		if e, ok := ParseDate(end, loc); ok {
			return !e.Before(s)
		}
		return true
	}
	if s, ok := ParseClock(start); ok {
		if e, ok := ParseClock(end); ok {
			return e >= s
		}
	}
	return true
}

func inTheFuture(c *Context, v any) bool {
	s, ok := text(v)
	if !ok || blankText(s) {
		return true
	}
	t, ok := ParseDate(s, time.UTC)
	if !ok {
		return true
	}
	if dateOnly(s) {
		t = endOfDay(t)
	}
	return t.After(c.now())
}

// defaultEndInTheFuture applies to start_time of an event without an
// end_time. Such an event ends at the end of its start day, which must not
// have passed.
func defaultEndInTheFuture(c *Context, v any) bool {
	if !blankText(c.record().EndTime) {
		return true
	}
	s, ok := text(v)
	if !ok || blankText(s) {
		return true
	}
	t, ok := ParseDate(s, time.UTC)
	if !ok {
		return true
	}
	return endOfDay(t).After(c.now())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// daysWithinInterval checks that at least one selected weekday falls inside
// the recurrence's date range.
func daysWithinInterval(c *Context, v any) bool {
	if c == nil || c.Recurrence == nil {
		return true
	}
	rec := *c.Recurrence
	if days, ok := v.(map[string]bool); ok {
		rec.Days = days
	}

	weekdays := rec.Weekdays()
	if len(weekdays) == 0 {
		return true
	}
	start, ok := ParseDate(rec.StartDate, rec.Zone())
	if !ok {
		return true
	}
	end, ok := ParseDate(rec.EndDate, rec.Zone())
	if !ok || end.Before(start) {
		return true
	}

	selected := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		selected[d] = true
	}
	for d, i := start, 0; !d.After(end) && i < 7; d, i = d.AddDate(0, 0, 1), i+1 {
		if selected[d.Weekday()] {
			return true
		}
	}
	return false
}
