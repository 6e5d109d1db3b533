// Command gridinterp runs the vertical level kernel and the HRRR grid
// projection from the command line.
//
// Usage:
//
//	gridinterp level --coord <values> --data <values> [flags] <level>...
//	gridinterp project [--inverse] [--] <a> <b>
//	gridinterp config
//
// Examples:
//
//	gridinterp level --coord 1000,850,500,200 --data 15,10,-5,-40 925 700
//	gridinterp level --name altitude --coord 0,1000,3000 --data 288,281,268 --json 1500
//	gridinterp project -- 39.64 -106.37
//	gridinterp project --inverse 1953000 1737000
//	gridinterp --config gridinterp.toml config
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geal-ai/gridinterp"
)

var version = "dev" // set with -ldflags "-X main.version=..."

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "gridinterp",
		Short:         "gridinterp interpolates gridded fields onto new levels",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gridinterp.LoadConfig(configPath)
			if err != nil {
				return err
			}
			level, err := logLevel(cfg.LogLevel, verbose)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			logger.Debug("config loaded", "path", configPath, "extrapolation", cfg.Extrapolation, "order", cfg.Order, "workers", cfg.Workers)

			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML or YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newLevelCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newConfigCmd())
	return root
}
