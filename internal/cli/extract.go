package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyfleet/adscan/internal/pipeline"
)

var extractTimeout time.Duration

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <directive>",
	Short: "Extract and validate a single directive without classifying",
	Long: `Extract runs the per-document pipeline on one directive and prints
the validated applicability record as JSON. Useful for inspecting what
the classifier would evaluate before running a full fleet check.

Example:
  adscan extract ad-2024-0123.pdf
  adscan extract fragments.json --provider ollama --model llama3.1`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 5*time.Minute, "extraction timeout")
	extractCmd.Flags().StringVar(&provider, "provider", "openai", "extraction provider (openai, ollama)")
	extractCmd.Flags().StringVar(&providerModel, "model", "", "extraction model name (provider default if empty)")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache")
	extractCmd.Flags().Float64Var(&yThreshold, "y-threshold", 15.0, "max vertical distance between fragments on one reading line")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", path)
	}

	res := p.ProcessDocument(ctx, path)
	if res.Err != nil {
		return fmt.Errorf("%s: %w", res.Label, res.Err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Assembled %d pages\n", len(res.Pages))
		if res.Degraded {
			fmt.Fprintf(os.Stderr, "! Degraded layout on at least one page\n")
		}
		if res.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
	}

	out, err := json.MarshalIndent(res.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
