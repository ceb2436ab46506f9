package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/pipeline"
	"github.com/ppiankov/ontologica/internal/report"
	"github.com/ppiankov/ontologica/internal/worker"
	"github.com/spf13/cobra"
)

var (
	listFile     string
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Check multiple ontology files in parallel",
	Long: `Batch checks many ontology files concurrently:
- Files come from arguments and/or a list file (one path per line)
- Each file is parsed into its own store
- Completeness can be reviewed by an LLM (interactive review is not available)
- One report per file is written to the output directory

Example:
  ontologica batch a.ont b.ont c.ont
  ontologica batch --list files.txt --workers 8 --output-dir ./reports
  ontologica batch --list files.txt --review llm --format json`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output.format":       "format",
			"review.mode":         "review",
			"concurrency.workers": "workers",
		})
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&listFile, "list", "l", "", "file listing ontology paths, one per line")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./ontologica-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntP("workers", "w", model.DefaultConfig().Concurrency.Workers, "number of concurrent workers")
	batchCmd.Flags().String("review", model.ReviewNone, "completeness review mode (none, llm)")
	batchCmd.Flags().StringP("format", "f", report.FormatJSON, "report format ("+strings.Join(report.Formats, ", ")+")")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths := append([]string(nil), args...)
	if listFile != "" {
		listed, err := worker.ReadPathsFromFile(listFile)
		if err != nil {
			return fmt.Errorf("read list file: %w", err)
		}
		paths = append(paths, listed...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no ontology files given (pass paths or --list)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, cancel := commandContext(batchTimeout)
	defer cancel()

	opts, err := reviewOptions(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Ontologica Batch Check\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Files:        %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Review:       %s\n", cfg.Review.Mode)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, append(opts, pipeline.WithLogger(logger))...)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Checking files with %d workers...\n\n", cfg.Concurrency.Workers)
	results := processor.ProcessFiles(ctx, paths)

	successCount := 0
	failureCount := 0
	names := newReportNames(report.Extension(cfg.Output.Format))

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, names.next(result.Path))
		if err := writeReport(p, outPath, result.Report); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		successCount++
		s := result.Report.Summary
		fmt.Fprintf(os.Stderr, "✓ %s (unclosed: %d, incomplete: %d) -> %s\n", result.Path, s.Unclosed, s.Incomplete, outPath)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// writeReport renders r into a new file at path
func writeReport(p *pipeline.Pipeline, path string, r *model.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report: %w", closeErr)
		}
	}()
	return p.RenderReport(f, r)
}

// reportNames derives unique report file names from source paths
type reportNames struct {
	ext    string
	issued map[string]bool
}

func newReportNames(ext string) *reportNames {
	return &reportNames{ext: ext, issued: make(map[string]bool)}
}

// next returns "<base><ext>", or the first free "<base>-N<ext>" when that
// name was already issued
func (n *reportNames) next(source string) string {
	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
	name := base + n.ext
	for i := 2; n.issued[name]; i++ {
		name = fmt.Sprintf("%s-%d%s", base, i, n.ext)
	}
	n.issued[name] = true
	return name
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	).Replace(s)

	if s == "" || s == "." || s == ".." {
		s = "report"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
