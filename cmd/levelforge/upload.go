package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/storage"
	"github.com/vovakirdan/levelforge/internal/upload"
)

var flagObfuscate bool

var uploadCmd = &cobra.Command{
	Use:   "upload <file|id>",
	Short: "Commit a level to the submissions repository",
	Long: `Upload a level document to the GitHub repository configured under
upload in the settings file. The argument is a document file, - for stdin,
or the ID of an archived level.

Credentials are read from the environment (or a .env file):
  LEVELFORGE_GITHUB_TOKEN             - personal access token
  LEVELFORGE_GITHUB_TOKEN_OBFUSCATED  - token as printed by --obfuscate
  LEVELFORGE_GITHUB_OWNER / _REPO / _BRANCH override the settings

Examples:
  levelforge upload level.json
  levelforge upload 4f0c2a9e-...
  levelforge upload --obfuscate ghp_xxx   # print an obfuscated token`,
	Args: cobra.ExactArgs(1),
	Run:  runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&flagObfuscate, "obfuscate", false, "Print the obfuscated form of the given token and exit")
}

func runUpload(_ *cobra.Command, args []string) {
	if flagObfuscate {
		fmt.Println(upload.Obfuscate(args[0], rand.New(rand.NewSource(time.Now().UnixNano()))))
		return
	}

	settings := loadSettings()
	up := newUploader(settings)
	if up == nil {
		fail("%v", upload.ErrNoToken)
	}

	var (
		data  []byte
		store *storage.Store
		rec   *storage.LevelRecord
	)
	if _, statErr := os.Stat(args[0]); statErr == nil || args[0] == "-" {
		var err error
		data, err = readInput(args[0])
		if err != nil {
			fail("%v", err)
		}
	} else {
		store = openStore(settings)
		defer store.Close()
		var err error
		rec, err = store.LevelByID(args[0])
		if err != nil {
			fail("%v", err)
		}
		if rec == nil {
			fail("%q is neither a file nor an archived level", args[0])
		}
		data = rec.Document
	}

	if _, err := level.Decode(data); err != nil {
		fail("not a level document: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), up.Client.Timeout+time.Second)
	defer cancel()
	res := <-up.UploadAsync(ctx, data)

	if rec != nil {
		if _, err := store.RecordUpload(storage.UploadRecord{
			LevelID: rec.ID,
			Path:    res.Path,
			OK:      res.OK,
			Message: res.Message,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record upload: %v\n", err)
		}
	}

	if !res.OK {
		fail("%s", res.Message)
	}
	fmt.Printf("Uploaded to %s\n", res.Path)
}
