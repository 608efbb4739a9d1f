package cmd

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/framewire/pkg/framing"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [message ...]",
	Short: "Send framed messages to a server",
	Long: `Connect to a framewire server, frame each message with the selected
codec, and print the echoed replies. Messages are taken from the
arguments, or from stdin (one per line) when no arguments are given.

Examples:
  framewire send --addr=localhost:7400 "hello" "world"
  cat payloads.txt | framewire send --addr=localhost:7400 --codec=checksum`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Listen
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")

		c, err := resolveCodec(cfg)
		if err != nil {
			return err
		}

		conn, err := net.DialTimeout("tcp", addr, timeout)
		if err != nil {
			return err
		}
		defer conn.Close()

		f := framing.NewFramed[[]byte](conn, c, c, framedConfig(cfg))

		messages := args
		if len(messages) == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				messages = append(messages, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}
		}

		for _, msg := range messages {
			if timeout > 0 {
				_ = conn.SetDeadline(time.Now().Add(timeout))
			}
			if err := f.Send([]byte(msg)); err != nil {
				return err
			}
			if err := f.Flush(); err != nil {
				return err
			}
			reply, err := f.Next()
			if err != nil {
				return fmt.Errorf("no reply for %q: %w", msg, err)
			}
			cmd.Printf("%s\n", reply)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("addr", "", "Server address to connect to")
	sendCmd.Flags().Duration("timeout", 10*time.Second, "Dial and per-message deadline")
}
