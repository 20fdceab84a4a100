package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventkit/pkg/event"
)

func TestRecurrence_Weekdays(t *testing.T) {
	t.Parallel()

	r := event.Recurrence{Days: map[string]bool{
		"Friday":  true,
		"monday":  true,
		"sunday":  false,
		"someday": true,
	}}
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, r.Weekdays())
	assert.Empty(t, event.Recurrence{}.Weekdays())
}

func TestRecurrence_Interval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, event.Recurrence{}.Interval())
	assert.Equal(t, 1, event.Recurrence{WeekInterval: -3}.Interval())
	assert.Equal(t, 2, event.Recurrence{WeekInterval: 2}.Interval())
}

func TestRecurrence_Zone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, event.Recurrence{}.Zone())
	assert.Equal(t, time.UTC, event.Recurrence{Timezone: "Nowhere/Invalid"}.Zone())
}
