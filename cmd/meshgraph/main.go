package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/generator"
	"github.com/philipparndt/meshgraph/version"
)

type rootOptions struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: slog.New(slog.DiscardHandler)}

	rootCmd := &cobra.Command{
		Use:   "meshgraph",
		Short: "Generate centerline node graphs from 3D meshes",
		Long: `meshgraph turns STL and 3MF models of corridors and rooms into node graphs.
Every node sits on the centerline of the walkable space and every edge carries
the width of the passage it crosses. Graphs are written as XML, JSON or YAML.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			generator.SetLogger(opts.logger)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log every pipeline stage")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newInfoCmd(opts),
		newEdgesCmd(opts),
		newNearestCmd(),
		newWatchCmd(opts),
		newSampleCmd(),
		newVersionCmd(),
	)
	rootCmd.AddCommand(newCompletionCmd(rootCmd))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}
