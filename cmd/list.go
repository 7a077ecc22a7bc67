package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the windows that would get a hint",
	Long:  "List the windows reported by the backend with their id, title, position and size.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all-desktops", false, "Include windows on other desktops")
	listCmd.Flags().String("title", "", "Filter windows by title substring")
	listCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runList(cmd *cobra.Command, args []string) error {
	backend, err := platform.Open(appConfig.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	all, _ := cmd.Flags().GetBool("all-desktops")
	title, _ := cmd.Flags().GetString("title")

	windows, err := backend.ListWindows(listOptions(all, title))
	if err != nil {
		return err
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return output.Fprint(cmd.OutOrStdout(), output.ListResult{Backend: backend.Name(), Windows: windows})
}
