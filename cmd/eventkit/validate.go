package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/eventkit/pkg/editor"
	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

var validateFlags struct {
	intent    string
	languages []string
	taxonomy  string
	wire      bool
	output    string
	messages  string
}

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate an event record",
	Long: `Validate an event record read from a file or stdin.

The record is in editor format unless --wire is given, in which case it is
an event as the catalog API returns it. The command prints the error map
and exits non-zero when any rule fails.

Examples:
  # Check a draft
  eventkit validate draft.json

  # Check before publishing, only Finnish and Swedish content
  eventkit validate --intent public --languages fi,sv event.json

  # Category rules need the keyword taxonomy
  eventkit validate --intent public --taxonomy keywords.yaml event.json

  # Print messages in Swedish as YAML
  eventkit validate --intent public --messages sv --output yaml event.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.intent, "intent", "i", string(validator.IntentDraft), "rule table to apply (draft, public)")
	validateCmd.Flags().StringSliceVarP(&validateFlags.languages, "languages", "l", nil, "content languages (default CONTENT_LANGUAGES)")
	validateCmd.Flags().StringVarP(&validateFlags.taxonomy, "taxonomy", "t", "", "keyword taxonomy file (default KEYWORD_TAXONOMY_FILE)")
	validateCmd.Flags().BoolVar(&validateFlags.wire, "wire", false, "input is an API event rather than an editor record")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", outputJSON, "output format (json, yaml)")
	validateCmd.Flags().StringVarP(&validateFlags.messages, "messages", "m", "", "also print messages in this language")
}

type validationReport struct {
	Valid    bool               `json:"valid"`
	Errors   validator.ErrorMap `json:"errors"`
	Messages []i18n.Message     `json:"messages,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	intent := validator.Intent(validateFlags.intent)
	if !intent.Valid() {
		return fmt.Errorf("%w: %q", errUnknownIntent, validateFlags.intent)
	}
	if err := checkOutput(validateFlags.output); err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	rec, err := decodeRecord(data, validateFlags.wire)
	if err != nil {
		return err
	}

	taxonomyPath := validateFlags.taxonomy
	if taxonomyPath == "" {
		taxonomyPath = settings.TaxonomyFile
	}
	taxonomy, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return err
	}

	langs := validateFlags.languages
	if len(langs) == 0 {
		langs = settings.Languages
	}

	errs := editor.NewSession(rec,
		editor.WithValidator(newValidator(settings)),
		editor.WithStaticTaxonomy(taxonomy),
		editor.WithLanguages(langs...),
	).Check(intent)
	if errs == nil {
		errs = validator.ErrorMap{}
	}

	report := validationReport{Valid: errs.IsEmpty(), Errors: errs}
	if validateFlags.messages != "" && !report.Valid {
		tr, err := newTranslator(settings, appLog)
		if err != nil {
			return err
		}
		report.Messages = tr.Localize(errs, tr.Match(validateFlags.messages))
	}

	appLog.DebugContext(cmd.Context(), "record validated",
		logger.Intent(string(intent)),
		logger.FailureCount(errs.Count()),
		logger.Component("cli"),
	)
	for _, v := range errs.Flatten() {
		appLog.DebugContext(cmd.Context(), "rule failed",
			logger.Path(v.Path),
			logger.Rule(string(v.Rule)),
			logger.Component("cli"),
		)
	}

	if err := write(cmd.OutOrStdout(), validateFlags.output, report); err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("%w: %d failed rules", errRecordInvalid, errs.Count())
	}
	return nil
}
