package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/rules"
)

var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestAfterStartTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"after", "2024-02-02T12:00:00Z", "2024-02-02T15:00:00Z", true},
		{"equal", "2024-02-02T12:00:00Z", "2024-02-02T12:00:00Z", true},
		{"before", "2024-02-02T15:00:00Z", "2024-02-02T12:00:00Z", false},
		{"offsets compared as instants", "2024-02-02T12:00:00+02:00", "2024-02-02T11:00:00Z", true},
		{"no start", "", "2024-02-02T12:00:00Z", true},
		{"no end", "2024-02-02T12:00:00Z", "", true},
		{"malformed end", "2024-02-02T12:00:00Z", "soon", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &rules.Context{Record: &event.Record{StartTime: tt.start}, Field: "end_time"}
			assert.Equal(t, tt.want, rules.Check(rules.AfterStartTime, c, tt.end))
		})
	}
}

func TestAfterStartTimeInRecurrence(t *testing.T) {
	t.Parallel()

	rec := &event.Recurrence{StartDate: "1.3.2024", StartTime: "18:00"}

	assert.True(t, rules.Check(rules.AfterStartTime, &rules.Context{Recurrence: rec, Field: "end_date"}, "31.3.2024"))
	assert.False(t, rules.Check(rules.AfterStartTime, &rules.Context{Recurrence: rec, Field: "end_date"}, "28.2.2024"))
	assert.True(t, rules.Check(rules.AfterStartTime, &rules.Context{Recurrence: rec, Field: "end_time"}, "19.30"))
	assert.False(t, rules.Check(rules.AfterStartTime, &rules.Context{Recurrence: rec, Field: "end_time"}, "17:00"))
}

func TestAfterEnrolmentStartTime(t *testing.T) {
	t.Parallel()

	c := &rules.Context{Record: &event.Record{EnrolmentStartTime: "2024-03-01"}}
	assert.True(t, rules.Check(rules.AfterEnrolmentStartTime, c, "2024-03-10"))
	assert.False(t, rules.Check(rules.AfterEnrolmentStartTime, c, "2024-02-10"))
	assert.True(t, rules.Check(rules.AfterEnrolmentStartTime, &rules.Context{}, "2024-02-10"))
}

func TestInTheFuture(t *testing.T) {
	t.Parallel()

	c := &rules.Context{Now: now}
	assert.True(t, rules.Check(rules.InTheFuture, c, "2024-01-15T12:00:01Z"))
	assert.False(t, rules.Check(rules.InTheFuture, c, "2024-01-15T11:59:59Z"))
	assert.True(t, rules.Check(rules.InTheFuture, c, "2024-01-15"), "a date runs until the end of the day")
	assert.False(t, rules.Check(rules.InTheFuture, c, "2024-01-14"))
	assert.True(t, rules.Check(rules.InTheFuture, c, ""))
}

func TestDefaultEndInTheFuture(t *testing.T) {
	t.Parallel()

	t.Run("no end time uses end of start day", func(t *testing.T) {
		t.Parallel()
		c := &rules.Context{Now: now, Record: &event.Record{}}
		assert.True(t, rules.Check(rules.DefaultEndInTheFuture, c, "2024-01-15T09:00:00Z"))
		assert.False(t, rules.Check(rules.DefaultEndInTheFuture, c, "2024-01-14T09:00:00Z"))
	})

	t.Run("explicit end time defers to inTheFuture", func(t *testing.T) {
		t.Parallel()
		c := &rules.Context{Now: now, Record: &event.Record{EndTime: "2024-01-01T10:00:00Z"}}
		assert.True(t, rules.Check(rules.DefaultEndInTheFuture, c, "2024-01-01T09:00:00Z"))
	})
}

func TestDaysWithinInterval(t *testing.T) {
	t.Parallel()

	// 1.3.2024 is a Friday.
	rec := &event.Recurrence{StartDate: "1.3.2024", EndDate: "3.3.2024"}
	c := &rules.Context{Recurrence: rec}

	assert.True(t, rules.Check(rules.DaysWithinInterval, c, map[string]bool{"saturday": true}))
	assert.False(t, rules.Check(rules.DaysWithinInterval, c, map[string]bool{"tuesday": true}))
	assert.True(t, rules.Check(rules.DaysWithinInterval, c, map[string]bool{"tuesday": true, "sunday": true}))
	assert.True(t, rules.Check(rules.DaysWithinInterval, c, map[string]bool{}), "empty selection is atLeastOneIsTrue's concern")

	long := &rules.Context{Recurrence: &event.Recurrence{StartDate: "1.3.2024", EndDate: "31.3.2024"}}
	assert.True(t, rules.Check(rules.DaysWithinInterval, long, map[string]bool{"tuesday": true}))

	assert.True(t, rules.Check(rules.DaysWithinInterval, &rules.Context{}, map[string]bool{"tuesday": true}))
}
