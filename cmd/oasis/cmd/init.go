package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/oasis/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize oasis configuration",
	Long: `Write the default config.yaml into your config directory.

The file contains the animation timings, export settings and the
interface texts. Add a 'presets:' list to replace the built-in cards.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return err
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit timings or output_dir in the config file")
	fmt.Fprintln(out, "  2. Run 'oasis' to water the seed")
	fmt.Fprintln(out, "  3. Run 'oasis render' to save a card directly")

	return nil
}
