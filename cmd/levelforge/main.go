// levelforge generates solvable grid levels for the block-coding game client.
//
// Usage:
//
//	levelforge generate          - Generate a level and print or save it
//	levelforge preview <file>    - Draw a level document as a top-down map
//	levelforge build             - Interactive level builder
//	levelforge serve             - Serve the builder over SSH
//	levelforge api               - Serve level generation over HTTP
//	levelforge history           - List archived levels
//	levelforge show <id>         - Print an archived level
//	levelforge upload <file|id>  - Commit a level to the submissions repository
//	levelforge presets           - List level presets
//	levelforge features          - List level features
//
// Global flags:
//
//	--config <path>     - Settings file (default search: ~/.levelforge/configs, ./configs)
//	--log-level <level> - debug, info, warn or error (default: info)
//	--seed <value>      - RNG seed for reproducible levels
//	--db <path>         - Level archive path (default from settings)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/config"
	// Import presets to register them
	_ "github.com/vovakirdan/levelforge/internal/presets"
	"github.com/vovakirdan/levelforge/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagSeed     int64
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelforge",
	Short: "levelforge - procedural level generator",
	Long: `levelforge builds solvable grid levels: walls and floor, optional
carved mazes, gates opened by pressure plates, a spawn, a goal flag and a
marked path between them. Levels are written as JSON documents the game
client loads.

Available commands:
  generate  - Generate a level
  preview   - Draw a level document
  build     - Interactive builder
  serve     - Serve the builder over SSH
  api       - Serve generation over HTTP
  history   - List archived levels
  show      - Print an archived level
  upload    - Commit a level to the submissions repository
  presets   - List presets
  features  - List features

Examples:
  levelforge generate --features goal,spawn,maze,path --size 15
  levelforge generate --preset gated --seed 42 --out level.json
  levelforge preview level.json
  levelforge build
  levelforge serve --ssh :23235`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to level archive (default from settings)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(featuresCmd)
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadSettings loads the settings file, exiting on error.
func loadSettings() config.Settings {
	settings, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		settings.Storage.DBPath = flagDBPath
	}
	return settings
}

// newLogger creates a stderr logger with the given prefix at --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the level archive, exiting on error.
func openStore(settings config.Settings) *storage.Store {
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		fail("opening level archive: %v", err)
	}
	return store
}

// tryOpenStore opens the archive, logging and continuing without it on error.
func tryOpenStore(settings config.Settings, logger *log.Logger) *storage.Store {
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open level archive", "error", err)
		return nil
	}
	return store
}
