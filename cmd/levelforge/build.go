package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/platform/tui"
	"github.com/vovakirdan/levelforge/internal/upload"
)

var flagBuildFeatures string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Interactive level builder",
	Long: `Open the level builder in the terminal.

Controls:
  1-8       - Toggle features
  e / Tab   - Edit name, author, skybox and size
  g / Enter - Generate
  s         - Save to the archive
  u         - Upload to the submissions repository
  ?         - More keys
  q         - Quit

Examples:
  levelforge build
  levelforge build --features goal,spawn,maze --seed 3`,
	Args: cobra.NoArgs,
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagBuildFeatures, "features", "", "Initially selected features")
}

func runBuild(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	logger := newLogger("levelforge")

	// Get terminal size; the builder also follows resize events.
	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed

	store := tryOpenStore(settings, logger)
	if store != nil {
		defer store.Close()
	}

	err := tui.RunBuilder(tui.BuilderOptions{
		Settings: settings,
		Store:    store,
		Uploader: newUploader(settings),
		Logger:   logger,
		Runtime:  rc,
		Features: flagBuildFeatures,
	})
	if err != nil {
		fail("%v", err)
	}
}

// newUploader builds an uploader from settings and the environment.
// Returns nil when no token is configured.
func newUploader(settings config.Settings) *upload.Uploader {
	env, err := config.LoadEnv()
	if err != nil {
		fail("%v", err)
	}
	if env.Token == "" && env.ObfuscatedToken == "" {
		return nil
	}
	up, err := upload.New(settings.Upload, env, newLogger("levelforge-upload"))
	if err != nil {
		fail("%v", err)
	}
	return up
}
