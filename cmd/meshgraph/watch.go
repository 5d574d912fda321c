package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/importer"
	"github.com/philipparndt/meshgraph/pkg/watcher"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "watch <input> <output>",
		Short: "Regenerate the node graph whenever the input changes",
		Long: `Watch generates the node graph once and then again after every change of the
input file until interrupted. The output file is overwritten each time.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, flags, root, args[0], args[1])
		},
	}
	flags.register(cmd, true)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, flags *generateFlags, root *rootOptions, in, out string) error {
	j, err := newJob(cmd, flags, in, out, true, root.logger)
	if err != nil {
		return err
	}
	cfg, err := flags.settings(cmd)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	regenerate := func() {
		g, err := j.run(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error %v\n", err)
			return
		}
		fmt.Fprintf(stdout, "Wrote %d nodes and %d edges to %s\n", g.NodeCount(), g.EdgeCount(), j.output)
	}
	regenerate()

	fw, err := watcher.NewFileWatcher(watcher.Options{
		Debounce: cfg.Watch.Debounce.Duration,
		Logger:   root.logger,
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	files, err := importer.Dependencies(j.input)
	if err != nil {
		return err
	}
	changes := make(chan struct{}, 1)
	if err := fw.Watch(files, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	fw.Start()
	fmt.Fprintf(stdout, "Watching %d file(s) for %s, press Ctrl+C to stop\n", len(files), j.input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			regenerate()
		}
	}
}
