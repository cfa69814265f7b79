// Package errors defines the error taxonomy of the timestamp extraction core.
//
// ConfigurationError is raised at initialization only. The remaining types are
// per-payload: they surface to the caller of ExtractTimestampMillis, which
// owns the record-level disposition (skip, dead-letter, retry).
package errors

import "fmt"

// ConfigurationError reports that the configured schema, field path, or
// separator could not be turned into a working extraction mode. Whether it
// aborts construction or only downgrades the mode depends on the
// strict-schema flag.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "protostamp: configuration: " + e.Reason + ": " + e.Err.Error()
	}
	return "protostamp: configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DecodeError reports a malformed, truncated, or overflowing byte stream,
// from either the schema decoder or the raw varint reader.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protostamp: decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FieldNotFoundError reports a field-path element that does not exist on the
// message it was resolved against. A missing field is always an error, never
// a default value.
type FieldNotFoundError struct {
	Field   string
	Message string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("protostamp: field %q not found in message %s", e.Field, e.Message)
}

// TypeMismatchError reports a field-path element that resolved to a field of
// an incompatible kind, for example a string leaf or a repeated field used as
// an intermediate step.
type TypeMismatchError struct {
	Field string
	Kind  string
	Want  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("protostamp: field %q is %s, want %s", e.Field, e.Kind, e.Want)
}
