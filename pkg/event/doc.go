// Package event defines the event record as the editor keeps it and the
// mapping between that shape and the catalog API's wire format.
//
// The editor format flattens a few API structures so the form can bind to
// them directly: external links become extlink_* fields, keyword references
// become {value, label} pairs, the first image becomes Image, and numeric
// API fields become raw input strings (Number) so that malformed input can be
// reported by validation rather than rejected while decoding.
//
// # Usage
//
//	rec, err := event.Decode(body)
//	if err != nil {
//	    // errors.Is(err, event.ErrInvalidRecord)
//	}
//
//	wire, err := event.ToWire(rec)
//	children, err := event.SubEventsToWire(rec, wire.ID)
//
// Sub-events are keyed by arbitrary strings; the recurring generator uses
// "0".."n-1" and SubEventKeys returns them in numeric order.
package event
