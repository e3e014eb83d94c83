package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/platform/tui"
)

var (
	flagLimit       int
	flagInteractive bool
	flagShowPreview bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived levels",
	Long: `List the most recently archived levels.

Examples:
  levelforge history
  levelforge history --limit 50
  levelforge history -i          # browse with previews`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived level",
	Long: `Print the JSON document of an archived level.

Examples:
  levelforge show 4f0c2a9e-...
  levelforge show 4f0c2a9e-... --preview`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of levels to list")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the archive interactively")
	showCmd.Flags().BoolVar(&flagShowPreview, "preview", false, "Draw the level instead of printing JSON")
}

func runHistory(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	store := openStore(settings)
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunArchive(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	levels, err := store.RecentLevels(flagLimit)
	if err != nil {
		fail("%v", err)
	}

	if len(levels) == 0 {
		fmt.Println("No levels archived yet.")
		fmt.Println()
		fmt.Println("Run 'levelforge generate --save' to keep one.")
		return
	}

	fmt.Printf("  %-36s  %-20s  %-4s  %-28s  %s\n", "ID", "Name", "Size", "Features", "Date")
	fmt.Printf("  %-36s  %-20s  %-4s  %-28s  %s\n", "--", "----", "----", "--------", "----")
	for _, l := range levels {
		fmt.Printf("  %-36s  %-20s  %-4d  %-28s  %s\n",
			l.ID, l.LevelName, l.Size, l.Features, l.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("%d levels, %d uploads (%d successful)\n", stats.Levels, stats.Uploads, stats.SuccessfulUploads)
	}
}

func runShow(_ *cobra.Command, args []string) {
	settings := loadSettings()
	store := openStore(settings)
	defer store.Close()

	rec, err := store.LevelByID(args[0])
	if err != nil {
		fail("%v", err)
	}
	if rec == nil {
		fail("unknown level %q", args[0])
	}

	if !flagShowPreview {
		fmt.Println(string(rec.Document))
		return
	}

	doc, err := level.Decode(rec.Document)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(tui.RenderPreview(doc))
	fmt.Println()
	fmt.Printf("Seed %d, %d attempt(s), features %s\n", rec.Seed, rec.Attempts, rec.Features)

	uploads, err := store.UploadsFor(rec.ID)
	if err == nil {
		for _, u := range uploads {
			status := "ok"
			if !u.OK {
				status = "failed"
			}
			fmt.Printf("  upload %s %s: %s\n", u.CreatedAt.Format("2006-01-02 15:04"), status, u.Path)
		}
	}
}
