package protostamp

import (
	runtimepkg "github.com/drblury/protostamp/internal/runtime"
	configpkg "github.com/drblury/protostamp/internal/runtime/config"
	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
	"github.com/drblury/protostamp/internal/runtime/fieldpath"
	idspkg "github.com/drblury/protostamp/internal/runtime/ids"
	loggingpkg "github.com/drblury/protostamp/internal/runtime/logging"
	schemapkg "github.com/drblury/protostamp/internal/runtime/schema"
	unitspkg "github.com/drblury/protostamp/internal/runtime/units"
)

type (
	Config                = configpkg.Config
	Extractor             = runtimepkg.Extractor
	ExtractorDependencies = runtimepkg.ExtractorDependencies
	ExtractionMetrics     = runtimepkg.ExtractionMetrics
	Mode                  = runtimepkg.Mode

	// Schema resolution and navigation seams, pluggable for custom
	// registries and decoded-message representations.
	DecodeFunc   = schemapkg.DecodeFunc
	Resolver     = schemapkg.Resolver
	TypeResolver = schemapkg.TypeResolver
	Node         = fieldpath.Node
	Path         = fieldpath.Path
	Converter    = unitspkg.Converter
	TimeUnit     = unitspkg.TimeUnit

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	ConfigurationError = errspkg.ConfigurationError
	DecodeError        = errspkg.DecodeError
	FieldNotFoundError = errspkg.FieldNotFoundError
	TypeMismatchError  = errspkg.TypeMismatchError
)

const (
	ModeSchemaGuided = runtimepkg.ModeSchemaGuided
	ModeRawFallback  = runtimepkg.ModeRawFallback

	UnitSeconds      = unitspkg.Seconds
	UnitMilliseconds = unitspkg.Milliseconds
	UnitMicroseconds = unitspkg.Microseconds
	UnitNanoseconds  = unitspkg.Nanoseconds

	MetadataTimestampMillis = runtimepkg.MetadataTimestampMillis
	MetadataPartitionKey    = runtimepkg.MetadataPartitionKey
	DefaultPartitionLayout  = runtimepkg.DefaultPartitionLayout
	DefaultSeparator        = fieldpath.DefaultSeparator
)

var (
	NewExtractor   = runtimepkg.NewExtractor
	LoadConfig     = configpkg.Load
	ValidateConfig = configpkg.ValidateConfig

	TimestampMiddleware  = runtimepkg.TimestampMiddleware
	PartitionKey         = runtimepkg.PartitionKey
	NewExtractionMetrics = runtimepkg.NewExtractionMetrics

	NewRegistryResolver = schemapkg.NewRegistryResolver
	NewMessageNode      = schemapkg.NewMessageNode
	ParseFieldPath      = fieldpath.Parse
	Navigate            = fieldpath.Navigate
	ParseTimeUnit       = unitspkg.Parse
	IdentityConverter   = unitspkg.Converter(unitspkg.Identity)

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter
	NewNopLogger              = loggingpkg.NewNopLogger

	NewMessageID = idspkg.MessageID
)
