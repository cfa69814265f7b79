// Package protostamp extracts event timestamps (epoch milliseconds) from
// serialized protobuf payloads so ingestion pipelines can bucket and
// partition records by time without running a full protobuf decode on the hot
// path unless one is actually needed.
//
// Two strategies exist, fixed at construction:
//
//   - schema-guided: Config.SchemaMessageName is resolved against a protobuf
//     type registry, the payload is decoded, and Config.TimestampFieldPath is
//     walked through the message tree ("meta.ts", or "meta/ts" with a custom
//     separator) to the timestamp field, however deeply it is nested.
//   - raw fallback: with no schema configured the timestamp is assumed to be
//     the first varint field of the message; one tag is skipped and the value
//     is read directly off the wire format, touching only the leading bytes.
//
// An unresolvable schema downgrades the extractor to raw fallback with a
// logged error, so a misconfigured consumer keeps moving records; set
// Config.StrictSchema to fail construction instead. Raw epoch values are
// scaled to milliseconds by a Converter, either derived from
// Config.TimestampUnit or supplied through ExtractorDependencies.
//
// The Extractor is immutable and safe for concurrent use. For Watermill
// pipelines, TimestampMiddleware stamps the extracted timestamp and a
// time-bucket partition key into each message's metadata and traces every
// extraction; see examples/ for Kafka and in-memory setups, and cmd/protostamp
// for a CLI that inspects single payloads.
package protostamp
