/*
Package runtime provides the timestamp extraction core for protostamp.

# Architecture Overview

The Extractor is built once from Config plus optional collaborators and is
immutable afterwards. At construction it settles on one of two strategies:

  - schema-guided: a configured protobuf message name is resolved to a decode
    capability, and a configured field path is walked through the decoded
    message tree to reach the timestamp, wherever it is nested.
  - raw fallback: no schema is configured (or, in non-strict mode, the
    configured one could not be resolved), so the timestamp is assumed to be
    the very first varint field of the message and is read straight off the
    wire format.

Every ExtractTimestampMillis call is a pure function of the selected mode and
the payload: no retries, no caching, no shared mutable state, so one extractor
can serve arbitrarily many goroutines.

# Package Structure

  - extractor.go: mode selection and per-payload orchestration
  - middleware.go: Watermill middleware stamping timestamps and partition
    keys into message metadata, with OpenTelemetry spans
  - metrics.go: Prometheus counters for extraction outcomes
  - partition.go: time-bucket partition keys for downstream sinks

# Sub-packages

  - config/: extraction configuration with validation and JSON/YAML loading
  - errors/: the error taxonomy (configuration, decode, field lookup)
  - fieldpath/: field-path parsing and message-tree navigation
  - schema/: message-name resolution and protoreflect-backed decoding
  - units/: raw epoch value to millisecond conversion
  - wire/: raw varint reading for the fallback path
  - ids/: ULID generation for message IDs
  - jsoncodec/: JSON marshaling utilities
  - logging/: logger interface and adapters
*/
package runtime
