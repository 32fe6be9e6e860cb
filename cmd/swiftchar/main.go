package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/oleg578/swiftchar/internal/config"
)

var log = commonlog.GetLogger("swiftchar.cli")

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	encoding   string
	bufferSize int
	verbose    int

	cfg *config.Config
}

// load reads the config file and lets explicitly set flags override it.
func (g *globals) load(cmd *cobra.Command) error {
	commonlog.Configure(g.verbose, nil)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("encoding") {
		cfg.Encoding = g.encoding
	}
	if flags.Changed("buffer-size") {
		cfg.BufferSize = g.bufferSize
	}
	g.cfg = cfg
	log.Debugf("config: encoding=%s buffer_size=%d", cfg.Encoding, cfg.BufferSize)
	return nil
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "swiftchar",
		Short:         "Stream characters, segments and CSV fields out of UTF-8 and UTF-16 files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "YAML settings file")
	flags.StringVarP(&g.encoding, "encoding", "e", "utf-8", "source encoding: utf-8, utf-16be or utf-16le")
	flags.IntVar(&g.bufferSize, "buffer-size", 0, "bytes requested per read (0 uses the default)")
	flags.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCharsCmd(g))
	rootCmd.AddCommand(newSegmentsCmd(g))
	rootCmd.AddCommand(newCSVCmd(g))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
