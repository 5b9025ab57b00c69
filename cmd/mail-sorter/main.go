package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-sorter/internal/core"
	"github.com/mikey/mail-sorter/internal/di"
	"github.com/mikey/mail-sorter/internal/ports"
)

var flags = &di.Flags{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "mail-sorter",
		Short: "Browse emails classified by the unwanted-mail sorter backend",
		Long: `mail-sorter lists the emails your sorting backend has classified,
marking any classification below your confidence threshold as Uncertain.

The threshold is kept in a local SQLite database by default, or in a shared
MySQL database so several machines see the same value.`,
		SilenceUsage: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "config file (default searches $HOME/.mail-sorter and ./configs)")
	pf.StringVar(&flags.BaseURL, "backend", "", "backend base URL")
	pf.StringVar(&flags.Store, "store", "", "settings store (memory, sqlite, mysql)")
	pf.StringVar(&flags.SQLitePath, "sqlite-path", "", "settings database path for the sqlite store")
	pf.BoolVar(&flags.NoSession, "no-session", false, "skip the login check and list emails globally")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "output logs in JSON format")
	pf.IntVar(&flags.SubjectWidth, "subject-width", 0, "truncate subjects to this many columns")

	rootCmd.AddCommand(popupCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// invoke builds the container and runs fn with its dependencies injected
func invoke(fn interface{}) error {
	container, err := di.BuildContainer(flags, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}
	defer syncLogger(container)

	return container.Invoke(fn)
}

func syncLogger(container *dig.Container) {
	_ = container.Invoke(func(logger *zap.Logger) {
		_ = logger.Sync()
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func popupCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Fetch and show classified emails",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			return invoke(func(view ports.PopupView, store core.SettingsStore, logger *zap.Logger) error {
				defer closeStore(store, logger)

				if interactive {
					return view.Run(ctx, os.Stdin)
				}
				_, err := view.Refresh(ctx)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "keep the popup open and read commands from stdin")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Open the backend login page in your browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			return invoke(func(view ports.PopupView, store core.SettingsStore, logger *zap.Logger) error {
				defer closeStore(store, logger)
				return view.OpenLogin(ctx)
			})
		},
	}
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the confidence threshold",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(func(ctx context.Context, view ports.SettingsView) error {
				return view.Show(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save <threshold>",
		Short: "Save a threshold between 0 and 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(func(ctx context.Context, view ports.SettingsView) error {
				return view.Save(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved threshold and use the default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(func(ctx context.Context, view ports.SettingsView) error {
				return view.Reset(ctx)
			})
		},
	})
	return cmd
}

func runSettings(fn func(ctx context.Context, view ports.SettingsView) error) error {
	ctx, cancel := signalContext()
	defer cancel()

	return invoke(func(view ports.SettingsView, store core.SettingsStore, logger *zap.Logger) error {
		defer closeStore(store, logger)
		return fn(ctx, view)
	})
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			return invoke(func(backend core.SortingBackend) error {
				return printHealth(ctx, backend, os.Stdout)
			})
		},
	}
}

// printHealth reports the backend status, telling a bad reply apart from no reply
func printHealth(ctx context.Context, backend core.SortingBackend, out io.Writer) error {
	health, err := backend.Health(ctx)
	if err != nil {
		if errors.Is(err, core.ErrUnexpectedResponse) {
			fmt.Fprintln(out, core.MsgUnexpected)
		} else {
			fmt.Fprintln(out, core.MsgUnreachable)
		}
		return err
	}
	fmt.Fprintf(out, "Backend: %s\n", health.Status)
	return nil
}

// closeStore closes stores that hold a database connection
func closeStore(store core.SettingsStore, logger *zap.Logger) {
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close settings store", zap.Error(err))
		}
	}
}
