// Command datacat reads data from files or stdin through datasrc.
//
// Usage:
//
//	datacat cat notes.txt
//	datacat --encoding latin1 lines legacy.txt
//	datacat save --out-dir backup --atomic a.txt b.txt -
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aigotowork/datasrc"
	"github.com/aigotowork/datasrc/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the resolved settings into every command.
type app struct {
	configPath string
	flags      config.Config

	cfg    *config.Config
	logger datasrc.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "datacat",
		Short:         "Read, inspect and save data from files or stdin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.flags.Encoding, "encoding", "e", "", "Encoding of the inputs (default utf8)")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newCatCmd(a),
		newLinesCmd(a),
		newInspectCmd(a),
		newSaveCmd(a),
		newTempCmd(a),
	)
	return rootCmd
}

// setup loads the config file, applies flags on top and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.Merge(a.flags)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})
	a.logger = datasrc.NewSlogLogger(slog.New(handler))
	a.logger.Debug("config loaded",
		datasrc.Field{Key: "path", Value: a.configPath},
		datasrc.Field{Key: "encoding", Value: cfg.Encoding},
	)
	return nil
}

// open builds a Data for input; "-" reads from the command's stdin, which
// is never closed.
func (a *app) open(cmd *cobra.Command, input string) (*datasrc.Data, error) {
	opts := []datasrc.Option{
		datasrc.WithEncoding(a.cfg.Encoding),
		datasrc.WithLogger(a.logger),
		datasrc.WithChunkSize(a.cfg.ChunkSize),
	}
	if input == "-" {
		return datasrc.FromReader(io.NopCloser(cmd.InOrStdin()), opts...)
	}
	return datasrc.FromPath(input, opts...)
}

// saveOptions turns the config into per-save options.
func (a *app) saveOptions() []datasrc.SaveOption {
	var opts []datasrc.SaveOption
	if a.cfg.Atomic {
		opts = append(opts, datasrc.WithAtomic())
	}
	if a.cfg.MaxSize > 0 {
		opts = append(opts, datasrc.WithMaxSize(a.cfg.MaxSize))
	}
	return opts
}
