package logger_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("domain attrs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.String("intent", "public"), logger.Intent("public"))
		assert.Equal(t, slog.String("rule", "isUrl"), logger.Rule("isUrl"))
		assert.Equal(t, slog.String("path", "sub_events.0.end_time"), logger.Path("sub_events.0.end_time"))
		assert.Equal(t, slog.Int("failures", 3), logger.FailureCount(3))
		assert.Equal(t, slog.Duration("duration", time.Second), logger.Duration(time.Second))
	})

	t.Run("empty inputs yield empty attrs", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
		assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	})

	t.Run("group", func(t *testing.T) {
		t.Parallel()
		attr := logger.Group("details", slog.Any("intent", []string{"oneof"}))
		assert.Equal(t, "details", attr.Key)
		require.Len(t, attr.Value.Group(), 1)
		assert.Equal(t, "intent", attr.Value.Group()[0].Key)
	})
}
