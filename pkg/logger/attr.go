package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier. An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Intent records the publication intent of a validation.
func Intent(intent string) slog.Attr {
	return slog.String("intent", intent)
}

func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Path records a dotted error path such as "sub_events.0.end_time".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// FailureCount records how many rule failures a validation produced.
func FailureCount(n int) slog.Attr {
	return slog.Int("failures", n)
}
