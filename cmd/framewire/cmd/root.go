package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ssargent/framewire/pkg/buffer"
	"github.com/ssargent/framewire/pkg/codec"
	"github.com/ssargent/framewire/pkg/config"
	"github.com/ssargent/framewire/pkg/framing"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "framewire",
	Short: "framewire - framed messaging over raw byte streams",
	Long: `framewire frames and unframes messages over TCP using a pluggable
codec (length-prefixed, checksummed or newline-delimited), for
exercising and debugging framed wire protocols.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("codec", "", "Frame codec: length16, length32, checksum or line")
	rootCmd.PersistentFlags().Int("max-frame", 0, "Maximum frame size in bytes")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// resolveConfig merges the config file (if any) with flag overrides.
// Flags win over the file, the file wins over defaults. The codec name
// is not validated here: commands that frame bytes validate it through
// resolveCodec, and commands that never frame (dump) ignore it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if name, _ := cmd.Flags().GetString("codec"); name != "" {
		cfg.Codec = name
	}
	if maxFrame, _ := cmd.Flags().GetInt("max-frame"); maxFrame > 0 {
		cfg.Framing.MaxFrameSize = maxFrame
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// wireCodec is what every CLI codec must provide: both directions over
// raw payloads.
type wireCodec interface {
	framing.Decoder[[]byte]
	framing.Encoder[[]byte]
}

// resolveCodec maps a codec name from config to an implementation.
func resolveCodec(cfg *config.Config) (wireCodec, error) {
	switch strings.ToLower(cfg.Codec) {
	case "length16":
		return codec.NewLengthPrefixCodecWithLimit(2, cfg.Framing.MaxFrameSize), nil
	case "length32":
		return codec.NewLengthPrefixCodecWithLimit(4, cfg.Framing.MaxFrameSize), nil
	case "checksum":
		return codec.NewChecksumCodec(cfg.Framing.MaxFrameSize), nil
	case "line":
		return &lineWireCodec{c: codec.NewLineCodec()}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want length16, length32, checksum or line)", cfg.Codec)
	}
}

// lineWireCodec adapts the string-typed LineCodec to the CLI's raw
// payload pipeline. DecodeEOF is forwarded so an unterminated trailing
// line is still delivered when the peer closes.
type lineWireCodec struct {
	c *codec.LineCodec
}

func (w *lineWireCodec) Decode(src *buffer.Buffer) ([]byte, bool, error) {
	line, ok, err := w.c.Decode(src)
	if !ok || err != nil {
		return nil, ok, err
	}
	return []byte(line), true, nil
}

func (w *lineWireCodec) DecodeEOF(src *buffer.Buffer) ([]byte, bool, error) {
	line, ok, err := w.c.DecodeEOF(src)
	if !ok || err != nil {
		return nil, ok, err
	}
	return []byte(line), true, nil
}

func (w *lineWireCodec) Encode(msg []byte, dst *buffer.Buffer) error {
	return w.c.Encode(string(msg), dst)
}

// framedConfig maps the file/flag tuning onto the framing package.
func framedConfig(cfg *config.Config) framing.FramedConfig {
	return framing.FramedConfig{
		Reader: framing.ReaderConfig{
			InitialCapacity: cfg.Framing.InitialCapacity,
			ReadChunkSize:   cfg.Framing.ReadChunkSize,
			MaxFrameSize:    cfg.Framing.MaxFrameSize,
		},
		Writer: framing.WriterConfig{
			InitialCapacity: cfg.Framing.InitialCapacity,
			HighWaterMark:   cfg.Framing.HighWaterMark,
		},
	}
}

// newLogger builds the zerolog logger all subcommands share.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
