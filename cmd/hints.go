package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/config"
	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/platform"
	"github.com/mj1618/winhint/internal/render"
)

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Print the hint table without showing the overlay",
	Long: `Assign hints exactly as the interactive mode would and print every label
with its window, label box and text origin. Nothing is drawn and the
keyboard is not grabbed.`,
	Args: cobra.NoArgs,
	RunE: runHints,
}

func init() {
	rootCmd.AddCommand(hintsCmd)
	hintsCmd.Flags().Bool("all-desktops", false, "Include windows on other desktops")
	hintsCmd.Flags().String("title", "", "Only hint windows whose title contains this")
	hintsCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runHints(cmd *cobra.Command, args []string) error {
	backend, err := platform.Open(appConfig.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	all, _ := cmd.Flags().GetBool("all-desktops")
	title, _ := cmd.Flags().GetString("title")

	res, err := hintsResult(appConfig, backend, listOptions(all, title))
	if err != nil {
		return err
	}
	return output.Fprint(cmd.OutOrStdout(), res)
}

func hintsResult(cfg config.Config, lister platform.WindowLister, opts platform.ListOptions) (output.HintsResult, error) {
	font, err := render.LoadFont(cfg.Font, cfg.FontSize)
	if err != nil {
		return output.HintsResult{}, err
	}
	defer font.Close()

	table, err := buildTable(cfg, lister, opts, font)
	if err != nil {
		return output.HintsResult{}, err
	}
	return output.HintsResult{Chars: cfg.Chars, Hints: table.Entries()}, nil
}
