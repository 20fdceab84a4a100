package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// Output formats.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	errUnknownOutput = errors.New("unknown output format")
	errUnknownIntent = errors.New("unknown intent")
	errRecordInvalid = errors.New("record is not valid")
)

// readInput reads the file named by the first argument, or stdin when it
// is "-" or missing.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

// write renders v as indented JSON or as YAML. YAML goes through the JSON
// encoding first so both formats share field names.
func write(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var generic any
		if err := dec.Decode(&generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, format)
	}
}

func checkOutput(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownOutput, format)
}

func decodeRecord(data []byte, wire bool) (*event.Record, error) {
	if !wire {
		return event.Decode(data)
	}
	var w event.WireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Join(event.ErrInvalidWireEvent, err)
	}
	return event.FromWire(&w)
}

// loadTaxonomy reads path, or returns an empty taxonomy when path is blank.
func loadTaxonomy(path string) (keywordset.Taxonomy, error) {
	if path == "" {
		return nil, nil
	}
	return keywordset.LoadFile(path)
}

func newValidator(cfg Config) *validator.Validator {
	return validator.New(validator.WithOfferExemptOrganizations(cfg.OfferExemptOrganizations...))
}

// newTranslator loads the embedded bundles and, when MESSAGES_DIR is set,
// the bundles found there.
func newTranslator(cfg Config, log *slog.Logger) (*i18n.Translator, error) {
	opts := []i18n.Option{i18n.WithLogger(log)}
	if cfg.MessagesDir != "" {
		opts = append(opts, i18n.WithBundles(os.DirFS(cfg.MessagesDir)))
	}
	return i18n.New(opts...)
}
