package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxTimeout  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a level menu.
Records are stored per-server and keyed by SSH user name.
Sound cues are not played for remote sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path, generating it if missing

Examples:
  sokoban serve                           # Listen on :23234
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --max-timeout 1h          # Cap session length

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().DurationVar(&flagMaxTimeout, "max-timeout", 0, "Maximum session length (0 = unlimited)")
}

func runServe(cmd *cobra.Command, _ []string) {
	a, err := newApp(logToStderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}
	theme, err := a.theme()
	if err != nil {
		fail("%v", err)
	}

	srvCfg := a.cfg.Server
	if cmd.Flags().Changed("ssh") {
		srvCfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		srvCfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		srvCfg.IdleTimeout = flagIdleTimeout
	}
	if cmd.Flags().Changed("max-timeout") {
		srvCfg.MaxTimeout = flagMaxTimeout
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     srvCfg.Address,
		HostKeyPath: config.ExpandPath(srvCfg.HostKeyPath),
		DBPath:      config.ExpandPath(a.cfg.Storage.DBPath),
		IdleTimeout: srvCfg.IdleTimeout,
		MaxTimeout:  srvCfg.MaxTimeout,
		TickRate:    a.cfg.Game.FPS,
		PackID:      a.packID,
		PackTitle:   a.packTitle,
		Levels:      a.levels,
		Theme:       theme,
		Logger:      a.logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Sokoban SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
