package cli

import (
	"errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cariskill/roadmap/internal/config"
	"github.com/cariskill/roadmap/internal/server"
	"github.com/cariskill/roadmap/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the engine over HTTP",
		Long: `Expose the engine over HTTP.

Endpoints:
  GET  /healthz         liveness probe
  POST /v1/normalize    raw payload -> modules
  POST /v1/graph        payload or rows (+ completed, collapsed) -> snapshot
  POST /v1/status       graph + completed -> statuses and progress
  POST /v1/visibility   graph + collapsed -> visible nodes and edges
  GET  /statsz          request and pipeline counters

With --log-file, logs go to a rotating file instead of stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Server.LogFile = logFile
			}

			logger := c.Logger
			if cfg.Server.LogFile != "" {
				w := rotatingLog(cfg.Server)
				defer w.Close()
				logger = newFileLogger(w, c.Logger.GetLevel())
			}

			stats := observability.NewStats()
			observability.SetPipelineHooks(stats)
			observability.SetHTTPHooks(stats)
			srv := server.New(&cfg, logger)
			srv.ExposeStats(stats)

			printInfo("Serving roadmap engine")
			printKeyValue("address", "http://"+cfg.Server.Addr)
			if cfg.Server.LogFile != "" {
				printKeyValue("log file", cfg.Server.LogFile)
			}
			err := srv.ListenAndServe(cmd.Context())
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: 127.0.0.1:8080)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to a rotating file")

	return cmd
}

// rotatingLog opens a size-rotated log file.
func rotatingLog(cfg config.ServerConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogRotation.MaxSizeMB,
		MaxBackups: cfg.LogRotation.MaxBackups,
		MaxAge:     cfg.LogRotation.MaxAgeDays,
		Compress:   cfg.LogRotation.Compress,
	}
}
