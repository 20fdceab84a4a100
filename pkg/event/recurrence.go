package event

import (
	"strings"
	"time"
)

// Recurrence is the recurring-event form: a date range, a daily time slot
// and the weekdays on which an occurrence happens.
type Recurrence struct {
	StartDate    string          `json:"start_date" yaml:"start_date"`
	EndDate      string          `json:"end_date" yaml:"end_date"`
	StartTime    string          `json:"start_time" yaml:"start_time"`
	EndTime      string          `json:"end_time" yaml:"end_time"`
	Days         map[string]bool `json:"days" yaml:"days"`
	WeekInterval int             `json:"week_interval,omitempty" yaml:"week_interval,omitempty"`
	Timezone     string          `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays returns the selected weekdays, Sunday first. Unknown day names are ignored.
func (r Recurrence) Weekdays() []time.Weekday {
	selected := make([]bool, 7)
	for name, on := range r.Days {
		if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok && on {
			selected[d] = true
		}
	}
	var days []time.Weekday
	for d, on := range selected {
		if on {
			days = append(days, time.Weekday(d))
		}
	}
	return days
}

// Interval returns the week interval, at least one.
func (r Recurrence) Interval() int {
	if r.WeekInterval < 1 {
		return 1
	}
	return r.WeekInterval
}

// Zone resolves Timezone, falling back to UTC.
func (r Recurrence) Zone() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
