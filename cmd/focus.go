package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/platform"
	"github.com/mj1618/winhint/internal/server"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Focus a window by id",
	Long:  "Ask the window manager to focus the window with the given id, as printed by the interactive mode or list.",
	Args:  cobra.NoArgs,
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().Int64("id", 0, "Window id to focus")
}

func runFocus(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt64("id")
	if id == 0 {
		return fmt.Errorf("specify --id")
	}

	backend, err := platform.Open(appConfig.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := backend.FocusWindow(model.WindowID(id)); err != nil {
		return err
	}
	return output.Fprint(cmd.OutOrStdout(), server.FocusResult{OK: true, Action: "focus", ID: model.WindowID(id)})
}
