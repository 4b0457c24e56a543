package cli

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/answerfinder/answerfinder/internal/server"
)

var (
	serveAddr       string
	serveCorpusPath string
	serveStatePath  string
	serveEndpoint   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the answer engine over HTTP",
	Long: `Serve exposes the engine with the extension message contract:

  POST /api/message  {type:"QUERY_ANSWER", payload:{query}, requestId}
  POST /api/corpus   replace the answer corpus (text or html body)
  GET  /api/stats    corpus and quota statistics
  GET  /health`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveCorpusPath, "corpus", "", "answer corpus file (text or html)")
	serveCmd.Flags().StringVar(&serveStatePath, "state", "", "state file path (default: ~/.answerfinder/state.json)")
	serveCmd.Flags().StringVar(&serveEndpoint, "ai-endpoint", "", "remote fallback endpoint URL")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveCorpusPath != "" {
		cfg.Corpus.Path = serveCorpusPath
	}
	if serveStatePath != "" {
		cfg.State.Path = serveStatePath
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveEndpoint != "" {
		cfg.Fallback.Enabled = true
		cfg.Fallback.Endpoint = serveEndpoint
	}

	if err := server.InitLogger(cfg.Log); err != nil {
		return err
	}

	// The corpus can be uploaded over /api/corpus, so a missing file is not
	// fatal in serve mode.
	if cfg.Corpus.Path != "" {
		if _, err := os.Stat(cfg.Corpus.Path); err != nil {
			zap.L().Warn("corpus file not found; waiting for upload",
				zap.String("path", cfg.Corpus.Path))
			cfg.Corpus.Path = ""
		}
	}

	eng, corpusStore, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(cfg.Server, eng, corpusStore).Handler(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		_ = srv.Shutdown(cmd.Context())
	}()

	zap.L().Info("starting server", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
