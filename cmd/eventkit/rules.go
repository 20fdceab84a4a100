package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

var rulesFlags struct {
	intent string
	output string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rule names or print a rule table",
	Long: `Without --intent, list every rule name a validation can report. With
--intent, print the fields checked for that intent and their rules in the
order they run.

Examples:
  eventkit rules
  eventkit rules --intent public --output yaml`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVarP(&rulesFlags.intent, "intent", "i", "", "print the table for this intent (draft, public)")
	rulesCmd.Flags().StringVarP(&rulesFlags.output, "output", "o", outputJSON, "output format (json, yaml)")
}

type ruleTableReport struct {
	Intent  validator.Intent  `json:"intent"`
	Entries []validator.Entry `json:"entries"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(rulesFlags.output); err != nil {
		return err
	}
	if rulesFlags.intent == "" {
		return write(cmd.OutOrStdout(), rulesFlags.output, map[string][]rules.Name{"rules": rules.All()})
	}

	intent := validator.Intent(rulesFlags.intent)
	t, ok := newValidator(settings).Table(intent)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownIntent, rulesFlags.intent)
	}
	return write(cmd.OutOrStdout(), rulesFlags.output, ruleTableReport{Intent: intent, Entries: t.Entries()})
}
