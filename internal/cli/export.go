package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/ontologica/internal/export"
	"github.com/ppiankov/ontologica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a parsed ontology to JSON, YAML, JSONL, Turtle or SQLite",
	Long: `Export parses an ontology file and writes its entities, predicates and
values in an interchange format. Stream formats go to stdout unless --out is
given; sqlite always needs --out.

Example:
  ontologica export example.ont --to turtle
  ontologica export example.ont --to sqlite --out example.db`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "to", "t", string(export.FormatJSON), "export format ("+strings.Join(export.FormatNames(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if export.FormatRegistry[format].Binary && exportOut == "" {
		return fmt.Errorf("%s export needs --out", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(0)
	defer cancel()

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(newLogger(cfg)))
	session, err := p.Parse(ctx, args[0])
	if err != nil {
		return err
	}
	snapshot := export.Snapshot(session.Store(), session.Source)

	if exportOut == "" {
		return export.Write(cmd.OutOrStdout(), snapshot, format)
	}
	if err := export.WriteFile(ctx, exportOut, snapshot, format); err != nil {
		return fmt.Errorf("export %s: %w", args[0], err)
	}
	fmt.Fprintf(os.Stderr, "✓ Exported %d entities to %s (%s)\n", len(snapshot.Entities), exportOut, format)
	return nil
}
