package main

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/unbound-force/apicov/pkg/contract"
	"github.com/unbound-force/apicov/pkg/report"
	"github.com/unbound-force/apicov/pkg/tracker"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "apicov",
		Short: "apicov — OpenAPI contract coverage reporting",
		Long: `Apicov tracks which endpoints, methods, and response statuses
of an OpenAPI-described service were actually exercised during a
test run, and renders the resulting coverage ledger as console,
JSON, or HTML reports.`,
		Version: version,
	}

	root.AddCommand(newReportCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// reportParams holds the parsed flags for the report command.
type reportParams struct {
	inputPath   string
	format      string
	showZero    bool
	interactive bool
	stdout      io.Writer
}

// runReport is the extracted, testable body of the report command.
func runReport(p reportParams) error {
	if p.format != "text" && p.format != "json" && p.format != "html" {
		return fmt.Errorf("invalid format %q: must be 'text', 'json', or 'html'", p.format)
	}

	f, err := os.Open(p.inputPath)
	if err != nil {
		return fmt.Errorf("opening coverage file: %w", err)
	}
	defer f.Close()

	records, err := report.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.inputPath, err)
	}

	if p.interactive {
		return runInteractiveReport(records, p.showZero)
	}

	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, records)
	case "html":
		return report.WriteHTML(p.stdout, records)
	default:
		return report.WriteTable(p.stdout, records, report.Options{
			ShowZeroCounts: p.showZero,
		})
	}
}

func newReportCmd() *cobra.Command {
	var (
		format      string
		showZero    bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "report [coverage.json]",
		Short: "Render a persisted coverage snapshot",
		Long: `Render a coverage.json snapshot (as written by the tracker) as a
console table, JSON, or HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCLIConfig(logger)
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				format = cfg.Format
			}
			if !cmd.Flags().Changed("show-zero") {
				showZero = cfg.ShowZeroCounts
			}
			return runReport(reportParams{
				inputPath:   args[0],
				format:      format,
				showZero:    showZero,
				interactive: interactive,
				stdout:      os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text, json, or html")
	cmd.Flags().BoolVar(&showZero, "show-zero", false,
		"include declared responses that were never hit")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"browse the report in an interactive viewer")

	return cmd
}

// inspectParams holds the parsed flags for the inspect command.
type inspectParams struct {
	contractPath string
	pathPrefix   string
	stdout       io.Writer
}

// runInspect is the extracted, testable body of the inspect command.
// It registers the contract into a fresh tracker and renders the
// all-zero snapshot, i.e. the declared surface that a test run would
// be measured against.
func runInspect(p inspectParams) error {
	doc, err := contract.LoadFile(p.contractPath)
	if err != nil {
		return err
	}

	t, err := tracker.New(tracker.Config{Logger: logger})
	if err != nil {
		return err
	}
	if err := t.Register(doc, tracker.RegisterOptions{PathPrefix: p.pathPrefix}); err != nil {
		return err
	}

	logger.Info("contract loaded", "operations", len(doc.Operations))

	return report.WriteTable(p.stdout, t.Snapshot(), report.Options{
		ShowZeroCounts: true,
	})
}

func newInspectCmd() *cobra.Command {
	var pathPrefix string

	cmd := &cobra.Command{
		Use:   "inspect [contract]",
		Short: "Show the declared surface of a contract",
		Long: `Load an OpenAPI document and list every declared
(path, method, status) triple that coverage would be tracked for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(inspectParams{
				contractPath: args[0],
				pathPrefix:   pathPrefix,
				stdout:       os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&pathPrefix, "path-prefix", "",
		"prefix prepended to declared paths before matching")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for coverage.json",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of the persisted coverage.json artifact. Useful for
validating snapshots or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
