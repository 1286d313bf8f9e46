package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/f3rmion/oasis/internal/card"
	"github.com/f3rmion/oasis/internal/pinyin"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Save a specimen card without the TUI",
	Long: `Draw a specimen card and save it as a PNG in the output directory.

Without --preset a card is drawn at random, exactly like watering the
seed in the TUI.

Example:
  oasis render
  oasis render --preset 佛系苔藓
  oasis render --preset 2 -o ~/Pictures`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("preset", "p", "", "preset name or index (default random)")
	renderCmd.Flags().Bool("no-image", false, "skip fetching the plant image")
}

func runRender(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	choice, _ := cmd.Flags().GetString("preset")
	noImage, _ := cmd.Flags().GetBool("no-image")

	preset, err := choosePreset(rt.picker, choice)
	if err != nil {
		return err
	}

	c := card.Card{
		Preset:    preset,
		Texts:     rt.cfg.Texts,
		Romanized: pinyin.NewParser().RomanizeUpper(preset.Name),
		Date:      specimen.FormatDate(time.Now()),
	}

	ctx := context.Background()
	if !noImage {
		img, err := rt.fetcher.Fetch(ctx, preset.Image)
		if err != nil {
			rt.logger.Warn("plant image unavailable", zap.String("ref", preset.Image), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Warning: could not load plant image: %v\n", err)
		} else {
			c.Image = img
		}
	}

	result := rt.saver.Save(ctx, c)
	if !result.OK() {
		return fmt.Errorf("%s: %w", rt.cfg.Texts.SaveFailed, result.Err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", preset.Name, result.Path)
	return nil
}

// choosePreset resolves a name or index, or picks at random when choice is empty.
func choosePreset(picker *specimen.Picker, choice string) (specimen.Preset, error) {
	if choice == "" {
		return picker.Pick(), nil
	}

	presets := picker.Presets()
	if p, ok := specimen.Find(presets, choice); ok {
		return p, nil
	}
	if i, err := strconv.Atoi(choice); err == nil {
		if i < 0 || i >= len(presets) {
			return specimen.Preset{}, fmt.Errorf("preset index %d out of range (0-%d)", i, len(presets)-1)
		}
		return presets[i], nil
	}
	return specimen.Preset{}, fmt.Errorf("unknown preset %q, see 'oasis presets'", choice)
}
