package cmd

import (
	"context"
	"errors"
	"io"
	"net"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ssargent/framewire/pkg/config"
	"github.com/ssargent/framewire/pkg/framing"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a framed echo server",
	Long: `Run a TCP server that decodes incoming frames with the selected codec
and echoes each one back to the sender.

Examples:
  framewire serve --listen=:7400 --codec=length16
  framewire serve --config=framewire.yaml --metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}
		if enabled, _ := cmd.Flags().GetBool("metrics"); enabled {
			cfg.Metrics.Enabled = true
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg, newLogger(cfg), echoHandler{})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics over HTTP")
}

// frameHandler is what a server mode does with each decoded frame.
// Returning a non-nil reply sends it back on the same connection.
type frameHandler interface {
	Handle(connID ksuid.KSUID, payload []byte) ([]byte, error)
}

// echoHandler replies with the frame it received.
type echoHandler struct{}

func (echoHandler) Handle(_ ksuid.KSUID, payload []byte) ([]byte, error) {
	return payload, nil
}

// runServe accepts connections until ctx is canceled, handing each one
// to serveConn.
func runServe(ctx context.Context, cfg *config.Config, log zerolog.Logger, handler frameHandler) error {
	c, err := resolveCodec(cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Str("codec", cfg.Codec).Msg("listening")

	metrics := newServeMetrics()
	group, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		group.Go(func() error {
			return runMetricsServer(ctx, cfg.Metrics.Listen, metrics, log)
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	group.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil // shutting down
				}
				return err
			}
			group.Go(func() error {
				serveConn(ctx, cfg, c, conn, log, metrics, handler)
				return nil // one bad connection never stops the server
			})
		}
	})

	err = group.Wait()
	if errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// serveConn drives one connection's frame loop until the peer closes
// or an unrecoverable framing error occurs.
func serveConn(ctx context.Context, cfg *config.Config, c wireCodec, conn net.Conn, log zerolog.Logger, metrics *serveMetrics, handler frameHandler) {
	id := ksuid.New()
	connLog := log.With().Str("conn", id.String()).Str("remote", conn.RemoteAddr().String()).Logger()
	connLog.Info().Msg("connection established")

	metrics.connsTotal.Inc()
	metrics.activeConns.Inc()
	defer metrics.activeConns.Dec()
	defer conn.Close()

	// Unblock the framing loop when the server shuts down.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	f := framing.NewFramed[[]byte](conn, c, c, framedConfig(cfg))
	for {
		payload, err := f.Next()
		if err != nil {
			logFrameError(connLog, metrics, err)
			return
		}
		metrics.received(len(payload))
		connLog.Debug().Int("bytes", len(payload)).Msg("frame received")

		reply, err := handler.Handle(id, payload)
		if err != nil {
			connLog.Error().Err(err).Msg("handler failed")
			return
		}
		if reply == nil {
			continue
		}
		if err := f.Send(reply); err != nil {
			connLog.Error().Err(err).Msg("encode failed")
			return
		}
		if err := f.Flush(); err != nil {
			logFrameError(connLog, metrics, err)
			return
		}
		metrics.sent(len(reply))
	}
}

// logFrameError classifies a framing error for the log and metrics.
func logFrameError(log zerolog.Logger, metrics *serveMetrics, err error) {
	var (
		truncated *framing.TruncatedFrameError
		tooLarge  *framing.FrameSizeError
		decode    *framing.DecodeError
		transport *framing.TransportError
	)
	switch {
	case errors.Is(err, io.EOF):
		log.Info().Msg("connection closed")
	case errors.As(err, &truncated):
		metrics.failed("truncated")
		log.Warn().Int("buffered", truncated.Buffered).Msg("peer closed mid-frame")
	case errors.As(err, &tooLarge):
		metrics.failed("frame_too_large")
		log.Warn().Int("buffered", tooLarge.Buffered).Int("limit", tooLarge.Limit).Msg("frame limit exceeded")
	case errors.As(err, &decode):
		metrics.failed("decode")
		log.Warn().Int("examined", decode.Examined).Err(err).Msg("malformed frame")
	case errors.As(err, &transport):
		metrics.failed("transport")
		log.Warn().Err(err).Msg("transport error")
	default:
		metrics.failed("other")
		log.Error().Err(err).Msg("frame loop failed")
	}
}
