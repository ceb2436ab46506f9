package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/pipeline"
	"github.com/ppiankov/ontologica/internal/report"
	"github.com/ppiankov/ontologica/internal/review"
	"github.com/spf13/cobra"
)

var (
	interactive  bool
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse an ontology file and report closure and completeness",
	Long: `Check parses an ontology file and:
- Prints the declared entities and predicates with their value counts
- Optionally asks whether each predicate with values is complete
- Reports predicates without values and predicates marked incomplete

Example:
  ontologica check example.ont
  ontologica check example.ont --interactive
  ontologica check example.ont --review llm --format json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output.format": "format",
			"review.mode":   "review",
		})
	},
	RunE: runCheck,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Show declared entities and predicate value counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)

	checkCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for completeness of each predicate with values")
	checkCmd.Flags().String("review", model.ReviewNone, "completeness review mode (none, interactive, llm)")
	checkCmd.Flags().StringP("format", "f", report.FormatText, "report format ("+strings.Join(report.Formats, ", ")+")")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "overall timeout (0 for none)")
}

// commandContext returns a context cancelled on interrupt and, when timeout
// is positive, after timeout
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if interactive {
		cfg.Review.Mode = model.ReviewInteractive
	}
	logger := newLogger(cfg)

	ctx, cancel := commandContext(checkTimeout)
	defer cancel()

	// Progress, status and prompts go to stderr when stdout carries a
	// structured report
	progress := progressWriter(cfg.Output.Format, os.Stdout, os.Stderr)

	opts, err := reviewOptions(ctx, cfg, logger, review.NewPrompt(os.Stdin, progress))
	if err != nil {
		return err
	}
	p := pipeline.NewPipeline(cfg, append(opts, pipeline.WithLogger(logger))...)

	fmt.Fprintf(progress, "Parsing ontology file: %s\n", path)
	session, err := p.Parse(ctx, path)
	if err != nil {
		return err
	}
	if err := p.RenderStatus(progress, p.Report(session)); err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	switch cfg.Review.Mode {
	case model.ReviewInteractive:
		fmt.Fprint(progress, "\n=== Completeness Check ===\n\n")
	case model.ReviewLLM:
		fmt.Fprintf(os.Stderr, "⚙️  Reviewing completeness with %s/%s...\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if err := p.Review(ctx, session); err != nil {
		return err
	}

	return p.RenderReport(os.Stdout, p.Report(session))
}

func runStatus(cmd *cobra.Command, args []string) error {
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
	return p.RenderStatus(cmd.OutOrStdout(), p.Report(session))
}

func isTextFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", report.FormatText, report.FormatMarkdown, "md":
		return true
	}
	return false
}
