package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/recurring"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

var expandFlags struct {
	output     string
	parent     string
	wire       bool
	superEvent string
}

var expandCmd = &cobra.Command{
	Use:   "expand [file|-]",
	Short: "Expand a recurring-event form into sub-events",
	Long: `Expand a recurrence (date range, daily time slot, weekdays and week
interval) into sub-events keyed "0".."n-1". The form may be JSON or YAML.

An invalid form prints the error map and exits non-zero.

Examples:
  # Print the generated sub_events
  eventkit expand recurrence.yaml

  # Append the occurrences to an existing record
  eventkit expand --parent event.json recurrence.yaml

  # One API event per occurrence, pointing at the parent event
  eventkit expand --parent event.json --wire --super-event helsinki:af7 recurrence.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringVarP(&expandFlags.output, "output", "o", outputJSON, "output format (json, yaml)")
	expandCmd.Flags().StringVarP(&expandFlags.parent, "parent", "p", "", "editor record to attach the sub-events to")
	expandCmd.Flags().BoolVar(&expandFlags.wire, "wire", false, "print API events for the parent's sub-events (requires --parent)")
	expandCmd.Flags().StringVar(&expandFlags.superEvent, "super-event", "", "super_event id for --wire output")
}

type expansionReport struct {
	Count     int                      `json:"count"`
	SubEvents map[string]*event.Record `json:"sub_events"`
}

type invalidRecurrence struct {
	Valid  bool               `json:"valid"`
	Errors validator.ErrorMap `json:"errors"`
}

func runExpand(cmd *cobra.Command, args []string) error {
	if err := checkOutput(expandFlags.output); err != nil {
		return err
	}
	if expandFlags.wire && expandFlags.parent == "" {
		return errors.New("--wire requires --parent")
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var rec event.Recurrence
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return errors.Join(recurring.ErrInvalidRecurrence, err)
	}

	occ, err := recurring.Expand(rec)
	if err != nil {
		if errs, ok := validator.ExtractErrorMap(err); ok {
			if werr := write(cmd.OutOrStdout(), expandFlags.output, invalidRecurrence{Errors: errs}); werr != nil {
				return werr
			}
		}
		return err
	}
	appLog.DebugContext(cmd.Context(), "recurrence expanded",
		logger.Component("cli"),
		slog.Int("occurrences", len(occ)),
	)

	if expandFlags.parent == "" {
		return write(cmd.OutOrStdout(), expandFlags.output, expansionReport{
			Count:     len(occ),
			SubEvents: recurring.Records(occ),
		})
	}

	raw, err := os.ReadFile(expandFlags.parent)
	if err != nil {
		return err
	}
	parent, err := event.Decode(raw)
	if err != nil {
		return fmt.Errorf("parent %s: %w", expandFlags.parent, err)
	}
	if err := recurring.Attach(parent, rec); err != nil {
		return err
	}

	if !expandFlags.wire {
		return write(cmd.OutOrStdout(), expandFlags.output, parent)
	}
	events, err := event.SubEventsToWire(parent, expandFlags.superEvent)
	if err != nil {
		return err
	}
	return write(cmd.OutOrStdout(), expandFlags.output, events)
}
