package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyfleet/adscan/internal/fleet"
	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/pipeline"
	"github.com/skyfleet/adscan/internal/worker"
)

var (
	fleetPath     string
	outputDir     string
	batchTimeout  time.Duration
	docWorkers    int
	evalWorkers   int
	provider      string
	providerModel string
	yThreshold    float64
	noCache       bool
	cacheDir      string
	noXLSX        bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <directive>...",
	Short: "Classify a fleet against one or more directive documents",
	Long: `Check processes directive documents in parallel and classifies
every aircraft in the fleet against each of them:
- Reconstruct reading order from OCR fragments or the PDF text layer
- Extract the applicability section into a structured record
- Validate the record (schema plus identifier namespace checks)
- Evaluate model, serial-number, and modification exclusion stages

Directives may be PDF files or fragment sidecars (.json) produced by an
external OCR run. A document that fails any stage contributes no column
to the matrix and is reported in the run summary.

Example:
  adscan check ad-2024-0123.pdf --fleet fleet.csv
  adscan check directives/*.pdf --fleet fleet.xlsx --workers 4
  adscan check ad.pdf --fleet fleet.csv --provider ollama --model llama3.1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&fleetPath, "fleet", "", "fleet file (.csv or .xlsx) with aircraft_model, msn, modifications_applied columns")
	_ = checkCmd.MarkFlagRequired("fleet")

	// Batch flags
	checkCmd.Flags().StringVar(&outputDir, "output-dir", "./adscan-results", "output directory for run results")
	checkCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	checkCmd.Flags().IntVar(&docWorkers, "workers", 2, "number of concurrent document workers")
	checkCmd.Flags().IntVar(&evalWorkers, "eval-workers", 0, "number of concurrent evaluation workers (0 = NumCPU)")

	// Extraction flags
	checkCmd.Flags().StringVar(&provider, "provider", "openai", "extraction provider (openai, ollama)")
	checkCmd.Flags().StringVar(&providerModel, "model", "", "extraction model name (provider default if empty)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh provider calls)")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist extractions on disk at this directory (default: memory only)")

	// Assembly flags
	checkCmd.Flags().Float64Var(&yThreshold, "y-threshold", 15.0, "max vertical distance between fragments on one reading line")

	// Output flags
	checkCmd.Flags().BoolVar(&noXLSX, "no-xlsx", false, "skip the XLSX rendering of the classification matrix")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  adscan Fleet Check\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Directives:   %d\n", len(args))
	fmt.Fprintf(os.Stderr, "  Fleet file:   %s\n", fleetPath)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", docWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	aircraft, err := fleet.Load(fleetPath)
	if err != nil {
		return fmt.Errorf("load fleet: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d aircraft\n", len(aircraft))

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d directives with %d workers...\n", len(args), cfg.Concurrency.DocumentWorkers)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.DocumentWorkers)
	results := processor.ProcessDocuments(ctx, args)

	successCount := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Label, res.Err)
			continue
		}
		successCount++
		note := ""
		if res.Degraded {
			note = " (degraded layout)"
		}
		if res.FromCache {
			note += " (cached)"
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %s%s\n", res.Label, res.Record.ADNumber, note)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Classifying %d aircraft x %d directives...\n", len(aircraft), successCount)

	matrix, err := worker.EvaluateMatrix(ctx, results, aircraft, cfg.Concurrency.EvaluationWorkers)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output)
	runDir, err := renderer.RunDir()
	if err != nil {
		return err
	}
	if err := renderer.WriteAll(runDir, matrix, results); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	affected, notApplicable, notAffected := tallyVerdicts(matrix)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Check Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Directives:      %d total, %d classified\n", len(results), successCount)
	fmt.Fprintf(os.Stderr, "  Affected:        %d\n", affected)
	fmt.Fprintf(os.Stderr, "  Not applicable:  %d\n", notApplicable)
	fmt.Fprintf(os.Stderr, "  Not affected:    %d\n", notAffected)
	fmt.Fprintf(os.Stderr, "  Output:          %s\n", runDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// buildConfig assembles the run configuration from defaults, flags, and
// provider credentials from the environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Assembly.YThreshold = yThreshold
	cfg.Extractor.Provider = provider
	cfg.Extractor.Model = providerModel
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.DocumentWorkers = docWorkers
	if evalWorkers > 0 {
		cfg.Concurrency.EvaluationWorkers = evalWorkers
	}
	cfg.Output.Dir = outputDir
	cfg.Output.WriteXLSX = !noXLSX
	cfg.Output.Verbose = verbose

	// Get API key from environment
	switch provider {
	case "openai":
		cfg.Extractor.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Extractor.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Extractor.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func tallyVerdicts(matrix *model.Matrix) (affected, notApplicable, notAffected int) {
	for _, row := range matrix.Rows {
		for _, v := range row.Verdicts {
			switch v.Status {
			case model.StatusAffected:
				affected++
			case model.StatusNotApplicable:
				notApplicable++
			case model.StatusNotAffected:
				notAffected++
			}
		}
	}
	return affected, notApplicable, notAffected
}
