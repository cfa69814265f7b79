package runtime

import (
	"errors"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MetadataTimestampMillis carries the extracted timestamp, formatted in
	// decimal, on messages that passed TimestampMiddleware.
	MetadataTimestampMillis = "protostamp_timestamp_ms"
	// MetadataPartitionKey carries the time-bucket partition key derived
	// from the extracted timestamp.
	MetadataPartitionKey = "protostamp_partition"
)

// TimestampMiddleware runs the extractor on every message payload and stamps
// the result into the message metadata before the handler sees it. Extraction
// errors fail the message, leaving the disposition (retry, poison queue,
// drop) to the host router's policy. Each message is traced with an
// OpenTelemetry span carrying the selected mode and extracted timestamp.
func TimestampMiddleware(extractor *Extractor) message.HandlerMiddleware {
	tracer := otel.Tracer("protostamp")

	var layout string
	if extractor != nil && extractor.Conf != nil {
		layout = extractor.Conf.PartitionLayout
	}

	return func(h message.HandlerFunc) message.HandlerFunc {
		if extractor == nil {
			return func(msg *message.Message) ([]*message.Message, error) {
				return nil, errors.New("protostamp: timestamp middleware requires an extractor")
			}
		}
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx, span := tracer.Start(msg.Context(), "protostamp.extract",
				trace.WithSpanKind(trace.SpanKindInternal))
			defer span.End()

			millis, err := extractor.ExtractTimestampMillis(msg.Payload)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			span.SetAttributes(
				attribute.String("protostamp.mode", string(extractor.Mode())),
				attribute.Int64("protostamp.timestamp_ms", int64(millis)),
			)

			msg.Metadata[MetadataTimestampMillis] = strconv.FormatUint(millis, 10)
			msg.Metadata[MetadataPartitionKey] = PartitionKey(millis, layout)
			msg.SetContext(ctx)

			return h(msg)
		}
	}
}
