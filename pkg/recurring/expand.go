package recurring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

// MaxOccurrences bounds a single expansion.
const MaxOccurrences = 1000

// Occurrence is one generated time slot.
type Occurrence struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// Expand lists the occurrences of rec in order. An invalid form returns an
// error wrapping ErrInvalidRecurrence and the validator.ErrorMap.
func Expand(rec event.Recurrence) ([]Occurrence, error) {
	if errs := Validate(rec); !errs.IsEmpty() {
		return nil, errors.Join(ErrInvalidRecurrence, errs)
	}

	loc := rec.Zone()
	first, _ := rules.ParseDate(rec.StartDate, loc)
	last, _ := rules.ParseDate(rec.EndDate, loc)
	startMin, _ := rules.ParseClock(rec.StartTime)
	endMin, _ := rules.ParseClock(rec.EndTime)

	sched, err := schedule(rec.Weekdays(), startMin, loc)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}

	interval := rec.Interval()
	firstWeek := weekStart(first)
	limit := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc)

	var out []Occurrence
	for t := sched.Next(first.Add(-time.Second)); !t.IsZero() && !t.After(limit); t = sched.Next(t) {
		if weeksBetween(firstWeek, weekStart(t))%interval != 0 {
			continue
		}
		if len(out) == MaxOccurrences {
			return nil, ErrTooManyOccurrences
		}
		y, m, d := t.Date()
		end := time.Date(y, m, d, endMin/60, endMin%60, 0, 0, loc)
		out = append(out, Occurrence{Start: t, End: end})
	}
	return out, nil
}

// SubEvents expands rec into sub-event records keyed "0".."n-1".
func SubEvents(rec event.Recurrence) (map[string]*event.Record, error) {
	occ, err := Expand(rec)
	if err != nil {
		return nil, err
	}
	return Records(occ), nil
}

// Records converts occurrences into sub-event records keyed by position.
func Records(occ []Occurrence) map[string]*event.Record {
	subs := make(map[string]*event.Record, len(occ))
	for i, o := range occ {
		subs[strconv.Itoa(i)] = &event.Record{
			StartTime: o.Start.Format(time.RFC3339),
			EndTime:   o.End.Format(time.RFC3339),
		}
	}
	return subs
}

// Attach adds the occurrences of rec to r as sub-events, numbering after
// the existing ones, and marks r as a recurring container.
func Attach(r *event.Record, rec event.Recurrence) error {
	if r == nil {
		return event.ErrInvalidRecord
	}
	subs, err := SubEvents(rec)
	if err != nil {
		return err
	}
	if r.SubEvents == nil {
		r.SubEvents = make(map[string]*event.Record, len(subs))
	}
	next := 0
	for _, key := range r.SubEventKeys() {
		if n, err := strconv.Atoi(key); err == nil && n >= next {
			next = n + 1
		}
	}
	for i := range len(subs) {
		r.SubEvents[strconv.Itoa(next+i)] = subs[strconv.Itoa(i)]
	}
	r.SuperEventType = event.SuperEventRecurring
	return nil
}

// schedule builds a cron schedule firing at the start time on each weekday.
func schedule(days []time.Weekday, minutes int, loc *time.Location) (cron.Schedule, error) {
	dow := make([]string, 0, len(days))
	for _, d := range days {
		dow = append(dow, strconv.Itoa(int(d)))
	}
	spec := fmt.Sprintf("CRON_TZ=%s %d %d * * %s", loc.String(), minutes%60, minutes/60, strings.Join(dow, ","))
	return cron.ParseStandard(spec)
}

// weekStart returns the Monday of t's week as a UTC date.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func weeksBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours()/24) / 7
}
