package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/answerfinder/answerfinder/internal/match"
)

var (
	askCorpusPath string
	askStatePath  string
	askNoCache    bool
	askNoAI       bool
	askEndpoint   string
	askTimeout    time.Duration
	askJSON       bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Resolve a single query against the loaded answer corpus",
	Long: `Ask scores every corpus line against the query's keywords, extracts the
most likely answer block, and prints the result. With --ai-endpoint set,
low-confidence matches escalate once to the remote model (quota permitting).

Example:
  answerfinder ask "What is the capital of France?" --corpus answers.txt
  answerfinder ask "which layer handles routing" --corpus notes.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askCorpusPath, "corpus", "", "answer corpus file (text or html)")
	askCmd.Flags().StringVar(&askStatePath, "state", "", "state file path (default: ~/.answerfinder/state.json)")
	askCmd.Flags().BoolVar(&askNoCache, "no-cache", false, "disable the result cache")
	askCmd.Flags().BoolVar(&askNoAI, "no-ai", false, "disable the remote fallback")
	askCmd.Flags().StringVar(&askEndpoint, "ai-endpoint", "", "remote fallback endpoint URL")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "overall resolve timeout")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw MatchResult as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askCorpusPath != "" {
		cfg.Corpus.Path = askCorpusPath
	}
	if askStatePath != "" {
		cfg.State.Path = askStatePath
	}
	if askNoCache {
		cfg.Cache.Enabled = false
	}
	if askEndpoint != "" {
		cfg.Fallback.Enabled = true
		cfg.Fallback.Endpoint = askEndpoint
	}
	if askNoAI {
		cfg.Fallback.Enabled = false
	}

	eng, _, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Keywords: %v\n", match.Keywords(query))
	}

	result := eng.Resolve(ctx, query)

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if !result.Success {
		fmt.Printf("No answer: %s\n", result.Message)
		return nil
	}

	tier := match.Classify(result.Confidence)
	fmt.Printf("Answer:     %s\n", result.Question.Original.Answer)
	fmt.Printf("Confidence: %.2f (%s)\n", result.Confidence, tier)
	fmt.Printf("Source:     %s", result.MatchType)
	if result.Cached {
		fmt.Printf(" (cached)")
	}
	fmt.Println()
	if result.Explanation != "" {
		fmt.Printf("Why:        %s\n", result.Explanation)
	}

	return nil
}
