package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/httpapi"
	"github.com/vovakirdan/levelforge/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagAPIAddr     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the level builder over SSH",
	Long: `Start an SSH server that gives every connection its own builder.

Levels saved by remote users go to the server's archive.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from settings

Examples:
  levelforge serve                 # Listen on the address from settings
  levelforge serve --ssh :2222     # Listen on port 2222

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")

	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (host:port)")
}

func runServe(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	logger := newLogger("levelforge-ssh")

	cfg := tui.SSHServerConfigFrom(settings)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	cfg.Store = tryOpenStore(settings, logger)
	if cfg.Store != nil {
		defer cfg.Store.Close()
	}
	cfg.Uploader = newUploader(settings)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting levelforge SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve level generation over HTTP",
	Long: `Start the HTTP API.

Routes:
  GET  /health
  GET  /features
  GET  /presets
  POST /levels        {"size":11,"features":"goal,spawn,path","seed":1}
  GET  /levels
  GET  /levels/{id}

Examples:
  levelforge api
  levelforge api --addr :8087`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func runAPI(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	logger := newLogger("levelforge-api")

	addr := settings.Server.APIAddr
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}

	store := tryOpenStore(settings, logger)
	if store != nil {
		defer store.Close()
	}

	if err := httpapi.New(settings, store, logger).ListenAndServe(addr); err != nil {
		fail("%v", err)
	}
}
