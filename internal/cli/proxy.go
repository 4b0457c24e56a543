package cli

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/answerfinder/answerfinder/internal/proxy"
	"github.com/answerfinder/answerfinder/internal/server"
)

var (
	proxyAddr     string
	proxyUpstream string
	proxyModel    string
	proxyRate     float64
	proxyBurst    int
)

// proxyCmd represents the proxy command
var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the model-API proxy the fallback client talks to",
	Long: `Proxy accepts the extension wire protocol (POST /api/query with
{"inputs": prompt}) and forwards prompts to an OpenAI-compatible
chat-completions endpoint, answering {"generated_text": ...}. Requests are
rate-limited per X-Extension-Key and rejected with HTTP 429 once spent.

The upstream API key is read from the environment (default GROQ_API_KEY).`,
	RunE: runProxy,
}

func init() {
	rootCmd.AddCommand(proxyCmd)

	proxyCmd.Flags().StringVar(&proxyAddr, "addr", "", "listen address (default from config)")
	proxyCmd.Flags().StringVar(&proxyUpstream, "upstream", "", "OpenAI-compatible base URL (default from config)")
	proxyCmd.Flags().StringVar(&proxyModel, "model", "", "upstream model name (default from config)")
	proxyCmd.Flags().Float64Var(&proxyRate, "rate", 0, "allowed requests per minute per key")
	proxyCmd.Flags().IntVar(&proxyBurst, "burst", 0, "burst size per key")
}

func runProxy(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if proxyAddr != "" {
		cfg.Proxy.Addr = proxyAddr
	}
	if proxyUpstream != "" {
		cfg.Proxy.UpstreamURL = proxyUpstream
	}
	if proxyModel != "" {
		cfg.Proxy.Model = proxyModel
	}
	if proxyRate > 0 {
		cfg.Proxy.RatePerMinute = proxyRate
	}
	if proxyBurst > 0 {
		cfg.Proxy.Burst = proxyBurst
	}

	if err := server.InitLogger(cfg.Log); err != nil {
		return err
	}

	p, err := proxy.New(cfg.Proxy)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Proxy.Addr,
		Handler: p.Handler(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down proxy")
		_ = srv.Shutdown(cmd.Context())
	}()

	zap.L().Info("starting proxy",
		zap.String("addr", cfg.Proxy.Addr),
		zap.String("upstream", cfg.Proxy.UpstreamURL),
		zap.String("model", cfg.Proxy.Model),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
