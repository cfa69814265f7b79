// protostamp is a debugging CLI for the extraction library: it reads a single
// serialized protobuf payload, runs the configured extraction strategy on it,
// and prints the timestamp and partition key a pipeline would bucket the
// record by.
//
// Usage:
//
//	protostamp extract --payload-hex 08b0ead9af61
//	protostamp extract --config extractor.yaml --payload-file event.bin
//	protostamp extract --schema ads.Impression --path meta.ts --unit seconds --payload-file event.bin
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drblury/protostamp"
	"github.com/drblury/protostamp/internal/runtime/jsoncodec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "protostamp",
		Short:        "Inspect event timestamps in serialized protobuf payloads",
		SilenceUsage: true,
	}
	root.AddCommand(newExtractCmd())
	return root
}

type extractFlags struct {
	configPath  string
	schema      string
	fieldPath   string
	separator   string
	unit        string
	layout      string
	strict      bool
	payloadHex  string
	payloadFile string
	verbose     bool
}

type extractReport struct {
	TimestampMillis uint64 `json:"timestamp_ms"`
	Mode            string `json:"mode"`
	PartitionKey    string `json:"partition_key"`
}

func newExtractCmd() *cobra.Command {
	flags := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the timestamp from one payload and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a JSON or YAML extraction config")
	f.StringVar(&flags.schema, "schema", "", "fully qualified protobuf message name")
	f.StringVar(&flags.fieldPath, "path", "", "timestamp field path inside the message")
	f.StringVar(&flags.separator, "separator", "", `field path separator (default ".")`)
	f.StringVar(&flags.unit, "unit", "", "timestamp unit: seconds, milliseconds, microseconds or nanoseconds")
	f.StringVar(&flags.layout, "partition-layout", "", "Go time layout for the partition key")
	f.BoolVar(&flags.strict, "strict", false, "fail instead of degrading when the schema cannot be resolved")
	f.StringVar(&flags.payloadHex, "payload-hex", "", "payload bytes as a hex string")
	f.StringVar(&flags.payloadFile, "payload-file", "", "path to a file holding the raw payload")
	f.BoolVar(&flags.verbose, "verbose", false, "log extractor diagnostics to stderr")

	return cmd
}

func runExtract(cmd *cobra.Command, flags *extractFlags) error {
	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}
	payload, err := readPayload(flags)
	if err != nil {
		return err
	}

	logger := protostamp.NewNopLogger()
	if flags.verbose {
		logger = protostamp.NewSlogServiceLogger(
			slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))
	}

	extractor, err := protostamp.NewExtractor(cfg, logger, protostamp.ExtractorDependencies{})
	if err != nil {
		return err
	}
	millis, err := extractor.ExtractTimestampMillis(payload)
	if err != nil {
		return err
	}

	report := extractReport{
		TimestampMillis: millis,
		Mode:            string(extractor.Mode()),
		PartitionKey:    protostamp.PartitionKey(millis, cfg.PartitionLayout),
	}
	out, err := jsoncodec.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// buildConfig starts from the config file (when given) and lets flags
// override individual fields.
func buildConfig(flags *extractFlags) (*protostamp.Config, error) {
	cfg := &protostamp.Config{}
	if flags.configPath != "" {
		loaded, err := protostamp.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.schema != "" {
		cfg.SchemaMessageName = flags.schema
	}
	if flags.fieldPath != "" {
		cfg.TimestampFieldPath = flags.fieldPath
	}
	if flags.separator != "" {
		cfg.TimestampFieldSeparator = flags.separator
	}
	if flags.unit != "" {
		cfg.TimestampUnit = flags.unit
	}
	if flags.layout != "" {
		cfg.PartitionLayout = flags.layout
	}
	if flags.strict {
		cfg.StrictSchema = true
	}

	return cfg, protostamp.ValidateConfig(cfg)
}

func readPayload(flags *extractFlags) ([]byte, error) {
	switch {
	case flags.payloadHex != "" && flags.payloadFile != "":
		return nil, errors.New("--payload-hex and --payload-file are mutually exclusive")
	case flags.payloadHex != "":
		cleaned := strings.TrimPrefix(strings.ReplaceAll(flags.payloadHex, " ", ""), "0x")
		payload, err := hex.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("decoding --payload-hex: %w", err)
		}
		return payload, nil
	case flags.payloadFile != "":
		payload, err := os.ReadFile(flags.payloadFile)
		if err != nil {
			return nil, fmt.Errorf("reading --payload-file: %w", err)
		}
		return payload, nil
	}
	return nil, errors.New("one of --payload-hex or --payload-file is required")
}
