// Package cmd contains all CLI commands for oasis.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/oasis/internal/asset"
	"github.com/f3rmion/oasis/internal/card"
	"github.com/f3rmion/oasis/internal/config"
	"github.com/f3rmion/oasis/internal/export"
	"github.com/f3rmion/oasis/internal/fortune"
	"github.com/f3rmion/oasis/internal/logging"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/f3rmion/oasis/internal/tui"
	"github.com/f3rmion/oasis/internal/tui/bigchar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oasis",
	Short: "Oasis - water a seed, get today's plant fortune",
	Long: `Oasis is a tiny daily fortune generator for the terminal.

Water the seed, wait for it to grow, and receive one of the specimen
cards with a slogan and a quote. Press 's' on the result screen to save
the card as oasis-specimen-0824.png.

Running 'oasis' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/oasis)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "directory for saved cards (default from config, else current dir)")
	rootCmd.PersistentFlags().Bool("verbose", false, "debug logging to <config dir>/oasis.log")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("OASIS")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// runtime bundles everything a command needs to generate and save cards.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	fetcher *asset.Fetcher
	picker  *specimen.Picker
	saver   *export.Saver
	fonts   *card.Fonts
}

// loadRuntime loads the user config and wires the card pipeline.
func loadRuntime() (*runtime, error) {
	configDir := getConfigDir()

	cfg, err := config.LoadDir(configDir)
	if err != nil {
		return nil, err
	}
	if out := viper.GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	logger := logging.NewOrNop(configDir, viper.GetBool("verbose"))
	logger.Debug("config loaded",
		zap.String("dir", configDir),
		zap.String("output", cfg.OutputDir),
		zap.Int("presets", len(cfg.ActivePresets())))

	picker, err := specimen.NewPicker(cfg.ActivePresets(), nil)
	if err != nil {
		return nil, err
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	renderer := card.NewRenderer(card.Options{
		PixelRatio: cfg.Export.PixelRatio,
		Background: bg,
		FontPath:   cfg.Export.FontPath,
	}, logger)

	saver := export.NewSaver(renderer, export.DirDownloader{Dir: cfg.OutputDir}, cfg.Timing.SettleDelay.Std(), logger)

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		fetcher: asset.NewFetcher(cfg.Assets.FetchTimeout.Std(), logger),
		picker:  picker,
		saver:   saver,
		fonts:   renderer.Fonts(),
	}, nil
}

// runTUI launches the interactive application.
func runTUI(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	app := tui.NewApp(rt.cfg, tui.Deps{
		Controller: fortune.NewController(rt.picker),
		Loader:     rt.fetcher,
		Saver:      rt.saver,
		Logger:     rt.logger,
		Banner:     rt.banner(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// banner draws the app name as block art when a CJK font is available.
func (rt *runtime) banner() string {
	if rt.fonts == nil || rt.fonts.Source() == "" {
		return ""
	}
	return bigchar.New(rt.fonts.Face(48)).Render("绿洲", 24, 6)
}
