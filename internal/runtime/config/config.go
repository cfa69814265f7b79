package config

import (
	"errors"
	"fmt"

	"github.com/drblury/protostamp/internal/runtime/units"
)

// Config groups the extraction settings, consumed once when the extractor is
// built and immutable afterwards.
type Config struct {
	// SchemaMessageName is the fully qualified protobuf message name of the
	// payload, for example "ads.ImpressionEvent". The name is resolved
	// against a type registry at initialization. When empty, schema-guided
	// extraction is disabled and the extractor assumes the timestamp is the
	// first varint field of the message.
	SchemaMessageName string `json:"schema_message_name" yaml:"schema_message_name"`

	// TimestampFieldPath names the timestamp field inside the message,
	// joined by TimestampFieldSeparator for nested fields. Only used in
	// schema-guided mode.
	TimestampFieldPath string `json:"timestamp_field_path" yaml:"timestamp_field_path"`

	// TimestampFieldSeparator splits TimestampFieldPath. Defaults to ".".
	// Splitting is literal: a field name containing the separator cannot be
	// expressed.
	TimestampFieldSeparator string `json:"timestamp_field_separator" yaml:"timestamp_field_separator"`

	// TimestampUnit names the unit incoming timestamps are encoded in:
	// "seconds", "milliseconds" (default), "microseconds" or "nanoseconds".
	// Ignored when a custom Converter dependency is supplied.
	TimestampUnit string `json:"timestamp_unit" yaml:"timestamp_unit"`

	// StrictSchema makes an unresolvable SchemaMessageName or an unusable
	// field path fail construction instead of silently degrading to
	// raw-fallback extraction.
	StrictSchema bool `json:"strict_schema" yaml:"strict_schema"`

	// PartitionLayout is the Go time layout used to derive partition keys
	// from extracted timestamps, rendered in UTC. Empty selects
	// "dt=2006-01-02/hr=15".
	PartitionLayout string `json:"partition_layout" yaml:"partition_layout"`

	// MetricsEnabled registers Prometheus counters for extraction outcomes
	// on the default registerer.
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`
}

func (c Config) String() string {
	// Use a type alias to avoid infinite recursion when printing.
	type configAlias Config
	return fmt.Sprintf("%+v", configAlias(c))
}

// Validate checks that the configuration is internally consistent. Schema
// resolvability is deliberately not checked here: whether an unknown message
// name is fatal depends on StrictSchema and is decided at construction.
func (c *Config) Validate() error {
	var errs []error

	if _, err := units.Parse(c.TimestampUnit); err != nil {
		errs = append(errs, err)
	}
	if c.StrictSchema && c.SchemaMessageName == "" {
		errs = append(errs, errors.New("strict_schema requires schema_message_name"))
	}
	if c.TimestampFieldPath != "" && c.SchemaMessageName == "" {
		errs = append(errs, errors.New("timestamp_field_path requires schema_message_name"))
	}

	return errors.Join(errs...)
}

// ValidateConfig is a convenience function to validate a config pointer.
// Returns nil if the config is valid.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}
