package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aigotowork/datasrc"
	"github.com/aigotowork/datasrc/internal/fsutil"
	"github.com/aigotowork/datasrc/internal/naming"
)

func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <input>",
		Short: "Write the input to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			_, err = d.SaveToWriter(cmd.OutOrStdout())
			return err
		},
	}
}

func newLinesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lines <input>",
		Short: "Print the input's lines, numbered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			out := cmd.OutOrStdout()
			n := 0
			for line, err := range d.Lines() {
				if err != nil {
					return err
				}
				n++
				if !strings.HasSuffix(line, "\n") {
					line += "\n"
				}
				fmt.Fprintf(out, "%6d\t%s", n, line)
			}
			return nil
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>...",
		Short: "Describe each input without reading it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, in := range args {
				d, err := a.open(cmd, in)
				if err != nil {
					return err
				}

				size := "-"
				if d.Origin() == datasrc.OriginPath {
					if !fsutil.FileExists(d.Path()) {
						d.Close()
						return fmt.Errorf("%s: %w", in, os.ErrNotExist)
					}
					size = fmt.Sprint(fsutil.FileSize(d.Path()))
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", d, d.Origin(), size)
				d.Close()
			}
			return nil
		},
	}
}

// saved is one line of save output.
type saved struct {
	name string
	res  datasrc.SaveResult
}

func newSaveCmd(a *app) *cobra.Command {
	var (
		outDir  string
		atomic  bool
		maxSize int64
	)

	cmd := &cobra.Command{
		Use:   "save <input>...",
		Short: "Copy inputs into a directory and print their SHA-256",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Atomic = a.cfg.Atomic || atomic
			if maxSize > 0 {
				a.cfg.MaxSize = maxSize
			}

			if err := fsutil.EnsureDir(outDir, 0755); err != nil {
				return err
			}

			stdin := 0
			for _, in := range args {
				if in == "-" {
					stdin++
				}
			}
			if stdin > 1 {
				return errors.New("stdin can only be saved once")
			}

			conflicts := naming.Conflicts(args)
			results := make([]saved, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Concurrency)

			for i, in := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}

					d, err := a.open(cmd, in)
					if err != nil {
						return err
					}
					defer d.Close()

					name := naming.OutputName(in, conflicts[in])
					res, err := d.SaveToPath(filepath.Join(outDir, name), a.saveOptions()...)
					if err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
					results[i] = saved{name: name, res: res}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%d\t%s\n", r.name, r.res.Written, r.res.SHA256)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory to save into")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Replace destinations only once complete")
	cmd.Flags().Int64Var(&maxSize, "max-size", 0, "Fail inputs larger than this many bytes")
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}

func newTempCmd(a *app) *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "temp <input>",
		Short: "Materialize the input in a temp file and report it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			var saveOpts []datasrc.SaveOption
			if a.cfg.MaxSize > 0 {
				saveOpts = append(saveOpts, datasrc.WithMaxSize(a.cfg.MaxSize))
			}

			return d.TempSaved(func(f *os.File) error {
				info, err := f.Stat()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", f.Name(), info.Size())
				return err
			},
				datasrc.WithTempDir(a.cfg.TempDir),
				datasrc.WithTempPrefix("datacat-"),
				datasrc.WithTempSuffix(suffix),
				datasrc.WithTempSaveOptions(saveOpts...),
			)
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "File name suffix, e.g. .pdf")
	return cmd
}
