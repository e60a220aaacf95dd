package cmd

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/metrics"
)

var rootCmd = &cobra.Command{
	Use:          "nwebtoon",
	Short:        "Analyze Naver Webtoon titles and collect episode image URLs",
	SilenceUsage: true,
}

// Execute runs the CLI. Command errors are reported to Sentry when a DSN is
// configured.
func Execute() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry")
		}
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer("", cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	if err := rootCmd.Execute(); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
	sentry.Flush(2 * time.Second)
}
