package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/config"
	"github.com/mj1618/winhint/internal/logging"
	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "winhint",
	Short: "Switch windows by typing a hint",
	Long: `Show a short hint label on every visible window and focus the window
whose hint you type. The selected window id is printed on stdout.

Press Escape, click anywhere or type one of the --exit-keys sequences to
leave without selecting anything.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSelect,
}

// appConfig is loaded once per invocation by PersistentPreRunE.
var appConfig config.Config

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}

		cfg, err := config.Load(rootCmd.PersistentFlags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if _, err := logging.Setup(cfg.LogLevel); err != nil {
			return err
		}
		appConfig = cfg
		return nil
	}
}
