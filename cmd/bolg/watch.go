package main

import (
	"bolg/internal/build"
	"bolg/internal/watch"
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild whenever content changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		b := &build.Builder{Cfg: cfg}
		rebuild := func(ctx context.Context) error {
			res, err := b.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
			return nil
		}
		if err := rebuild(ctx); err != nil {
			slog.Error("initial build failed", "error", err)
		}

		return watch.New([]string{cfg.ContentDir}, rebuild, slog.Default()).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
