package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/opentext/internal/app/watch"
)

var watchDelay time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file> <op> [args...]",
	Short: "Rerun an operation whenever a file changes",
	Long: `watch applies an operation to a file and applies it again each time the
file is written. Changes are debounced so a burst of writes runs once.

  opentext watch notes.txt split ";"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, name := args[0], args[1]
		op, err := application.ParseOp(name, args[2:])
		if err != nil {
			return err
		}

		w, err := watch.New(path,
			watch.WithDelay(watchDelay),
			watch.WithLogger(application.Logger()),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		application.Logger().Info("watching %s", w.Path())
		return w.Run(cmd.Context(), func(ctx context.Context) error {
			return application.RunFile(ctx, op, w.Path(), out)
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", watch.DefaultDelay, "quiet period before rerunning")
	rootCmd.AddCommand(watchCmd)
}
