package cmd

import (
	"fmt"

	"github.com/f3rmion/oasis/internal/config"
	"github.com/f3rmion/oasis/internal/pinyin"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the specimen presets",
	Long: `List every specimen card that can be drawn, in draw order.

The index shown can be passed to 'oasis render --preset'.`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDir(getConfigDir())
	if err != nil {
		return err
	}

	parser := pinyin.NewParser()
	out := cmd.OutOrStdout()

	for i, p := range cfg.ActivePresets() {
		fmt.Fprintf(out, "%d. %s  (%s)\n", i, p.Name, parser.Romanize(p.Name))
		fmt.Fprintf(out, "   【%s】%s\n", p.TagType, p.TagText)
		fmt.Fprintf(out, "   %s\n", p.Quote)
		fmt.Fprintf(out, "   → %s\n\n", p.CTA)
	}

	return nil
}
