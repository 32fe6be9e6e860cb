package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oleg578/swiftchar"
)

func newCharsCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "chars <file>",
		Short: "Print every decoded character with its encoded size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.cfg.Options()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var n int
			var writeErr error
			err = swiftchar.ReadFileChars(args[0], opts, func(r rune, size int) bool {
				if _, writeErr = fmt.Fprintf(out, "U+%04X\t%d\t%q\n", r, size, r); writeErr != nil {
					return false
				}
				n++
				return limit <= 0 || n < limit
			})
			if err != nil {
				return fmt.Errorf("read chars: %w", err)
			}
			if writeErr != nil {
				return writeErr
			}
			log.Infof("%s: %d characters", args[0], n)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after N characters (0 reads everything)")
	return cmd
}
