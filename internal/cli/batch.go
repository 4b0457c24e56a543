package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/answerfinder/answerfinder/internal/model"
	"github.com/answerfinder/answerfinder/internal/worker"
)

var (
	batchCorpusPath  string
	batchStatePath   string
	batchEndpoint    string
	batchConcurrency int
	batchOutJSON     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <queries-file>",
	Short: "Resolve a file of queries concurrently",
	Long: `Batch reads queries from a file (one per line, #-comments skipped) and
resolves them concurrently against a shared engine. Results are printed as a
summary, or written as JSON with --json.

Example:
  answerfinder batch queries.txt --corpus answers.txt --concurrency 8 --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchCorpusPath, "corpus", "", "answer corpus file (text or html)")
	batchCmd.Flags().StringVar(&batchStatePath, "state", "", "state file path (default: ~/.answerfinder/state.json)")
	batchCmd.Flags().StringVar(&batchEndpoint, "ai-endpoint", "", "remote fallback endpoint URL")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "concurrent resolves")
	batchCmd.Flags().StringVar(&batchOutJSON, "json", "", "write results JSON to this path")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchCorpusPath != "" {
		cfg.Corpus.Path = batchCorpusPath
	}
	if batchStatePath != "" {
		cfg.State.Path = batchStatePath
	}
	if batchEndpoint != "" {
		cfg.Fallback.Enabled = true
		cfg.Fallback.Endpoint = batchEndpoint
	}

	queries, err := worker.ReadQueriesFromFile(args[0])
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries found in %s", args[0])
	}

	eng, _, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Resolving %d queries with concurrency %d\n", len(queries), batchConcurrency)
	}

	results := worker.NewBatchProcessor(eng, batchConcurrency).Process(ctx, queries)

	matched, fallback := 0, 0
	for _, r := range results {
		if r.Result.Success {
			matched++
			if r.Result.MatchType == model.MatchTypeAI {
				fallback++
			}
		}
	}

	if batchOutJSON != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := os.WriteFile(batchOutJSON, data, 0644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Printf("Wrote %d results to %s\n", len(results), batchOutJSON)
	}

	fmt.Printf("Resolved %d/%d queries (%d via fallback)\n", matched, len(results), fallback)
	return nil
}
