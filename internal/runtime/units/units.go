// Package units converts raw epoch values into epoch milliseconds. The unit a
// producer encodes its timestamps in is configuration, not something the wire
// format carries, so the extraction core only ever sees the resulting
// Converter.
package units

import (
	"fmt"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
)

// Converter turns a raw epoch value in some fixed unit into epoch
// milliseconds.
type Converter func(raw uint64) uint64

// TimeUnit names the unit incoming timestamp values are encoded in.
type TimeUnit string

const (
	Seconds      TimeUnit = "seconds"
	Milliseconds TimeUnit = "milliseconds"
	Microseconds TimeUnit = "microseconds"
	Nanoseconds  TimeUnit = "nanoseconds"
)

// Parse maps a configuration string onto a TimeUnit. The empty string selects
// Milliseconds.
func Parse(s string) (TimeUnit, error) {
	switch TimeUnit(s) {
	case "":
		return Milliseconds, nil
	case Seconds, Milliseconds, Microseconds, Nanoseconds:
		return TimeUnit(s), nil
	}
	return "", &errspkg.ConfigurationError{Reason: fmt.Sprintf("unknown time unit %q", s)}
}

// Converter returns the millisecond conversion for the unit. Unrecognised
// units convert as milliseconds.
func (u TimeUnit) Converter() Converter {
	switch u {
	case Seconds:
		return func(raw uint64) uint64 { return raw * 1000 }
	case Microseconds:
		return func(raw uint64) uint64 { return raw / 1000 }
	case Nanoseconds:
		return func(raw uint64) uint64 { return raw / 1_000_000 }
	default:
		return Identity
	}
}

// Identity passes the raw value through unchanged, for producers that already
// emit epoch milliseconds.
func Identity(raw uint64) uint64 { return raw }
