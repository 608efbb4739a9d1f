package cmd

import (
	"encoding/hex"
	"unicode/utf8"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/framewire/pkg/capture"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the contents of a capture store",
	Long: `Walk a capture store created by "framewire capture" and print every
recorded frame. Text payloads are printed as-is; binary payloads are
hex-encoded.

Examples:
  framewire dump --dir=./capture
  framewire dump --dir=/tmp/session1 --hex`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.Capture.Dir = dir
		}
		forceHex, _ := cmd.Flags().GetBool("hex")

		store, err := capture.Open(cfg.Capture.Dir)
		if err != nil {
			return err
		}
		defer store.Close()

		var count int
		err = store.Walk(func(id ksuid.KSUID, payload []byte) error {
			count++
			if !forceHex && utf8.Valid(payload) {
				cmd.Printf("%s  %4d bytes  %s\n", id, len(payload), payload)
			} else {
				cmd.Printf("%s  %4d bytes  %s\n", id, len(payload), hex.EncodeToString(payload))
			}
			return nil
		})
		if err != nil {
			return err
		}
		cmd.Printf("%d frames\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().String("dir", "", "Capture store directory")
	dumpCmd.Flags().Bool("hex", false, "Hex-encode all payloads")
}
