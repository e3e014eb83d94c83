package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/platform/tui"
	"github.com/vovakirdan/levelforge/internal/registry"
	"github.com/vovakirdan/levelforge/internal/storage"
)

var (
	flagSize     int
	flagFeatures string
	flagPreset   string
	flagOut      string
	flagSave     bool
	flagPreview  bool
	flagName     string
	flagAuthor   string
	flagSkybox   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a level",
	Long: `Generate a level and write its JSON document to stdout or --out.

Features (comma separated):
  goal, spawn, maze, hgate, vgate, path, colorbomb, bw

Examples:
  levelforge generate
  levelforge generate --features goal,spawn,path --size 9
  levelforge generate --preset double-gated --seed 7 --out level.json
  levelforge generate --preset noir --save --preview`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagSize, "size", 0, "Grid size (default from settings or preset)")
	generateCmd.Flags().StringVar(&flagFeatures, "features", "", "Comma separated features")
	generateCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset ID (see 'levelforge presets')")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Write the document to this file")
	generateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the level in the archive")
	generateCmd.Flags().BoolVar(&flagPreview, "preview", false, "Draw the level on stderr")
	generateCmd.Flags().StringVar(&flagName, "name", "", "Level name")
	generateCmd.Flags().StringVar(&flagAuthor, "author", "", "Author name")
	generateCmd.Flags().StringVar(&flagSkybox, "skybox", "", "Skybox name")
}

// buildConfig resolves flags against settings into a generator config.
func buildConfig(settings config.Settings) (levelgen.LevelConfig, error) {
	cfg := levelgen.LevelConfig{
		Size:     flagSize,
		Features: levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn),
		Header:   settings.Header.Header(),
		Params:   settings.Generation.Params(),
	}

	if flagPreset != "" {
		p, err := registry.Create(flagPreset)
		if err != nil {
			return cfg, err
		}
		pc := p.Configure(flagSize)
		cfg.Size, cfg.Features = pc.Size, pc.Features
	}
	if flagFeatures != "" {
		flags, err := levelgen.ParseFeatures(flagFeatures)
		if err != nil {
			return cfg, err
		}
		cfg.Features = flags
	}
	if cfg.Size == 0 {
		cfg.Size = settings.Generation.DefaultSize
	}

	if flagName != "" {
		cfg.Header.LevelName = flagName
	}
	if flagAuthor != "" {
		cfg.Header.Author = flagAuthor
	}
	if flagSkybox != "" {
		cfg.Header.Skybox = flagSkybox
	}
	return cfg, cfg.Validate()
}

func runGenerate(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	logger := newLogger("levelforge")

	cfg, err := buildConfig(settings)
	if err != nil {
		fail("%v", err)
	}

	rng, seed := core.NewRand(flagSeed)
	gen := levelgen.NewGenerator(cfg.Params.MaxAttempts, logger)
	res, err := gen.Generate(cfg, rng)
	if err != nil {
		fail("%v", err)
	}
	logger.Info("generated level", "size", res.Size, "features", res.Features.String(), "seed", seed, "attempts", res.Attempts)

	data, err := level.Encode(res.Document)
	if err != nil {
		fail("encoding level: %v", err)
	}

	if flagOut != "" {
		if err := os.WriteFile(flagOut, append(data, '\n'), 0o644); err != nil {
			fail("writing %s: %v", flagOut, err)
		}
	} else {
		fmt.Println(string(data))
	}

	if flagPreview {
		fmt.Fprintln(os.Stderr, tui.RenderPreview(res.Document))
	}

	if flagSave {
		store := openStore(settings)
		defer store.Close()
		id, err := store.SaveLevel(storage.LevelRecord{
			Seed:     seed,
			Size:     res.Size,
			Features: res.Features.String(),
			Attempts: res.Attempts,
			Document: data,
		})
		if err != nil {
			fail("%v", err)
		}
		fmt.Fprintf(os.Stderr, "Saved as %s\n", id)
	}
}

var previewCmd = &cobra.Command{
	Use:   "preview <file|->",
	Short: "Draw a level document as a top-down map",
	Long: `Decode a level document and draw it. Use - to read from stdin.

Legend:
  █ wall   · floor   = ‖ doors   o plate
  ─ │ ┌ ┐ └ ┘ path   ^ > v < spawn facing   F flag

Examples:
  levelforge preview level.json
  levelforge generate --preset maze | levelforge preview -`,
	Args: cobra.ExactArgs(1),
	Run:  runPreview,
}

func runPreview(_ *cobra.Command, args []string) {
	data, err := readInput(args[0])
	if err != nil {
		fail("%v", err)
	}

	summary, err := level.Inspect(data)
	if err != nil {
		fail("%v", err)
	}
	doc, err := level.Decode(data)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println(tui.RenderPreview(doc))
	fmt.Println()
	printSummary(summary)
}

// printSummary prints the header and element counts of a document.
func printSummary(s level.Summary) {
	fmt.Printf("Name:   %s\n", s.LevelName)
	fmt.Printf("Author: %s\n", s.UserName)
	fmt.Printf("Skybox: %s\n", s.Skybox)
	fmt.Printf("Size:   %dx%d\n", s.Size, s.Size)
	for _, k := range level.AllKinds() {
		if n := s.Counts[k]; n > 0 {
			fmt.Printf("  %-14s %d\n", k, n)
		}
	}
	fmt.Printf("  %-14s %d\n", "total", s.Total())
}

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
