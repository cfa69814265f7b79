package runtime

import (
	configpkg "github.com/drblury/protostamp/internal/runtime/config"
	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
	"github.com/drblury/protostamp/internal/runtime/fieldpath"
	loggingpkg "github.com/drblury/protostamp/internal/runtime/logging"
	schemapkg "github.com/drblury/protostamp/internal/runtime/schema"
	unitspkg "github.com/drblury/protostamp/internal/runtime/units"
	"github.com/drblury/protostamp/internal/runtime/wire"
)

// Mode names the extraction strategy an Extractor settled on at construction.
// It never changes per call.
type Mode string

const (
	// ModeSchemaGuided decodes the full message and walks the configured
	// field path to the timestamp, wherever it is nested.
	ModeSchemaGuided Mode = "schema_guided"
	// ModeRawFallback assumes the timestamp is the first field of the
	// message and reads it straight off the wire format, without parsing
	// the rest of the message.
	ModeRawFallback Mode = "raw_fallback"
)

// ExtractorDependencies holds the optional collaborators of an Extractor.
// Leave fields nil to use the defaults.
type ExtractorDependencies struct {
	// Resolver maps Config.SchemaMessageName to a decode capability.
	// Defaults to the process-global protobuf type registry.
	Resolver schemapkg.Resolver

	// Converter turns the raw field value into epoch milliseconds.
	// Defaults to the conversion named by Config.TimestampUnit.
	Converter unitspkg.Converter

	// Metrics counts extraction outcomes per mode. Defaults to none, or to
	// collectors on the Prometheus default registerer when
	// Config.MetricsEnabled is set.
	Metrics *ExtractionMetrics
}

// Extractor pulls an epoch-millisecond timestamp out of serialized protobuf
// payloads. It is immutable after construction and safe for concurrent use
// without locking: each call depends only on the payload it was given, and a
// failing payload affects no other call.
type Extractor struct {
	Conf   *configpkg.Config
	Logger loggingpkg.ServiceLogger

	mode    Mode
	decode  schemapkg.DecodeFunc
	path    fieldpath.Path
	convert unitspkg.Converter
	metrics *ExtractionMetrics
}

// NewExtractor builds an Extractor from the configuration. A configured
// schema that cannot be resolved (unknown message name, empty or malformed
// field path) is logged and the extractor degrades to raw-fallback mode,
// preserving the historical behaviour of shipping a working extractor with
// only a log line as evidence; set Config.StrictSchema to fail construction
// instead.
func NewExtractor(conf *configpkg.Config, log loggingpkg.ServiceLogger, deps ExtractorDependencies) (*Extractor, error) {
	if conf == nil {
		return nil, &errspkg.ConfigurationError{Reason: "config is nil"}
	}
	if log == nil {
		log = loggingpkg.NewNopLogger()
	}
	if err := conf.Validate(); err != nil {
		return nil, &errspkg.ConfigurationError{Reason: "invalid config", Err: err}
	}

	x := &Extractor{
		Conf:    conf,
		Logger:  log,
		mode:    ModeRawFallback,
		metrics: deps.Metrics,
	}

	x.convert = deps.Converter
	if x.convert == nil {
		unit, err := unitspkg.Parse(conf.TimestampUnit)
		if err != nil {
			return nil, err
		}
		x.convert = unit.Converter()
	}

	if x.metrics == nil && conf.MetricsEnabled {
		x.metrics = NewExtractionMetrics(nil)
	}
	if x.metrics != nil {
		if err := x.metrics.Register(); err != nil {
			return nil, &errspkg.ConfigurationError{Reason: "registering metrics", Err: err}
		}
	}

	if conf.SchemaMessageName != "" {
		if err := x.configureSchemaGuided(conf, deps.Resolver); err != nil {
			if conf.StrictSchema {
				return nil, err
			}
			log.Error("schema-guided extraction unavailable, falling back to raw varint decoding", err,
				loggingpkg.LogFields{
					"schema_message": conf.SchemaMessageName,
					"field_path":     conf.TimestampFieldPath,
				})
		}
	}

	log.Info("timestamp extractor ready", loggingpkg.LogFields{
		"mode":       string(x.mode),
		"field_path": conf.TimestampFieldPath,
	})
	return x, nil
}

func (x *Extractor) configureSchemaGuided(conf *configpkg.Config, resolver schemapkg.Resolver) error {
	if resolver == nil {
		resolver = schemapkg.NewRegistryResolver(nil)
	}
	decode, err := resolver.Resolve(conf.SchemaMessageName)
	if err != nil {
		return err
	}
	path, err := fieldpath.Parse(conf.TimestampFieldPath, conf.TimestampFieldSeparator)
	if err != nil {
		return err
	}

	x.decode = decode
	x.path = path
	x.mode = ModeSchemaGuided
	return nil
}

// Mode reports the strategy selected at construction.
func (x *Extractor) Mode() Mode { return x.mode }

// ExtractTimestampMillis returns the event timestamp of the payload in epoch
// milliseconds. Errors are per-payload and deterministic: the same mode and
// payload always produce the same result.
func (x *Extractor) ExtractTimestampMillis(payload []byte) (uint64, error) {
	raw, err := x.extractRaw(payload)
	if err != nil {
		x.metrics.observe(x.mode, err)
		return 0, err
	}
	x.metrics.observe(x.mode, nil)
	return x.convert(raw), nil
}

func (x *Extractor) extractRaw(payload []byte) (uint64, error) {
	if x.mode == ModeSchemaGuided {
		node, err := x.decode(payload)
		if err != nil {
			return 0, err
		}
		return fieldpath.Navigate(node, x.path)
	}

	// Raw fallback: the first field is assumed to be a required varint
	// numeric, so one tag is discarded unseen and the next bytes are the
	// value. The assumption is a documented precondition, not verified.
	dec := wire.NewDecoder(payload)
	if err := dec.SkipTag(); err != nil {
		return 0, err
	}
	return dec.ReadUvarint()
}
