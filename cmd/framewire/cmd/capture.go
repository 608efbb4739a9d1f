package cmd

import (
	"os/signal"
	"syscall"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/framewire/pkg/capture"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Record incoming frames to a capture store",
	Long: `Run a TCP server that decodes incoming frames and persists every
payload to an on-disk capture store instead of echoing it. Use
"framewire dump" to inspect what was captured.

Examples:
  framewire capture --listen=:7400 --dir=./capture
  framewire capture --codec=checksum --dir=/tmp/session1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.Capture.Dir = dir
		}
		if enabled, _ := cmd.Flags().GetBool("metrics"); enabled {
			cfg.Metrics.Enabled = true
		}
		log := newLogger(cfg)

		store, err := capture.Open(cfg.Capture.Dir)
		if err != nil {
			return err
		}
		defer store.Close()
		log.Info().Str("dir", cfg.Capture.Dir).Msg("capture store open")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg, log, &captureHandler{store: store})
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().String("listen", "", "Address to listen on")
	captureCmd.Flags().String("dir", "", "Capture store directory")
	captureCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics over HTTP")
}

// captureHandler persists frames instead of echoing them.
type captureHandler struct {
	store *capture.Store
}

func (h *captureHandler) Handle(_ ksuid.KSUID, payload []byte) ([]byte, error) {
	if _, err := h.store.Append(payload); err != nil {
		return nil, err
	}
	return nil, nil
}
