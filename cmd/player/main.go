// cliplayer: terminal media player. Plays a media file, directory, URI or
// playlist through libVLC with single-key transport controls.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliplayer/internal/config"
	"cliplayer/internal/keyboard"
	"cliplayer/internal/media"
	"cliplayer/internal/player"
	"cliplayer/internal/playlist"
	"cliplayer/internal/system"
	"cliplayer/internal/vlc"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	rootCmd := playCmd()
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// playCmd is the root command: resolve the argument into a playlist and
// play it with keyboard control.
func playCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cliplayer <playlist.txt | media path | directory | URI>",
		Short: "cliplayer — play media from the terminal with single-key controls",
		Long:  "cliplayer — play media from the terminal with single-key controls\n\n" + player.Help,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: %s <playlist.txt or media path>", cmd.Root().Name())
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.LstdFlags | log.Lmicroseconds)

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return run(args[0], cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default: $XDG_CONFIG_HOME/cliplayer/config.yaml)")
	flags.Float64("volume", 1.0, "Initial volume (0.0-1.0)")
	flags.Float64("volume-step", player.DefaultVolumeStep, "Volume change per +/- key press")
	flags.Duration("seek-step", player.DefaultSeekStep, "Seek distance per f/r key press")
	flags.BoolP("loop", "l", false, "Restart the playlist after the last track")
	flags.BoolP("watch", "w", false, "Reload the playlist file or directory when it changes")
	flags.StringSlice("vlc-arg", nil, "Extra flag passed to libVLC (repeatable)")

	return cmd
}

func run(arg string, cfg *config.Config) error {
	list, err := playlist.Resolve(arg)
	if err != nil {
		return err
	}
	log.Printf("[main] %d track(s) queued", list.Len())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Engine ---
	engine, err := vlc.New(cfg.VLC.Args)
	if err != nil {
		return fmt.Errorf("engine init: %w", err)
	}
	defer engine.Release()

	// --- Keyboard ---
	kb, err := keyboard.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer kb.Close()

	out := kb.Writer(os.Stdout)
	log.SetOutput(kb.Writer(os.Stderr))
	defer log.SetOutput(os.Stderr)

	// --- Playlist Watcher ---
	var reloads <-chan []string
	if cfg.Watch {
		w, ch, err := newWatcher(ctx, arg)
		if err != nil {
			log.Printf("[main] watcher disabled: %v", err)
		} else if w != nil {
			reloads = ch
			go func() {
				if err := w.Start(); err != nil {
					log.Printf("[main] watcher error: %v", err)
				}
			}()
			defer w.Stop()
		}
	}

	// --- Playback ---
	opts := player.Options{
		VolumeStep:    cfg.VolumeStep,
		SeekStep:      cfg.SeekStep,
		InitialVolume: cfg.Volume,
		Loop:          cfg.Loop,
	}
	session := player.NewSession(engine, list, opts, out)

	fmt.Fprintln(out, player.Help)
	err = session.Run(ctx, kb.Keys(), reloads)

	if stopErr := engine.Stop(); stopErr != nil {
		log.Printf("[main] engine stop: %v", stopErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Println("[main] shutdown complete")
	return nil
}

// newWatcher sets up live reloading for playlist files and directories.
// Single files and remote URIs have nothing to watch and return nil.
func newWatcher(ctx context.Context, arg string) (*playlist.Watcher, <-chan []string, error) {
	var load playlist.LoadFunc
	switch {
	case media.IsRemote(arg):
		return nil, nil, nil
	case playlist.IsPlaylistFile(arg):
		load = playlist.LoadFile
	default:
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			return nil, nil, nil
		}
		load = playlist.ScanDir
	}

	ch := make(chan []string, 1)
	w, err := playlist.NewWatcher(arg, load, func(uris []string) {
		log.Printf("[main] playlist changed: %d entries", len(uris))
		select {
		case ch <- uris:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return w, ch, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cliplayer %s\nBuilt: %s\n", version, buildTime)
		},
	}
}

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Check that libVLC and the terminal are usable",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.LstdFlags)

			cfgFile := ""
			if cfg, err := config.Load(configPath, nil); err != nil {
				fmt.Printf("Config          : %v\n", err)
			} else {
				cfgFile = cfg.File
			}

			status := system.RunHealthCheck(vlc.Version, cfgFile)
			fmt.Printf("libVLC          : %s\n", orDefault(status.LibVLCVersion, "unavailable ("+status.LibVLCError+")"))
			fmt.Printf("VLC binary      : %s\n", orDefault(status.VLCBinary, "not found"))
			fmt.Printf("Stdin terminal  : %v\n", status.StdinTerminal)
			fmt.Printf("Stdout terminal : %v\n", status.StdoutTerminal)
			fmt.Printf("Config file     : %s\n", orDefault(status.ConfigFile, "none"))
			fmt.Printf("Platform        : %s/%s\n", status.OS, status.Arch)
			fmt.Printf("Checked at      : %s\n", time.Now().Format(time.RFC3339))

			if !status.Ready() {
				return errors.New("environment not ready for playback")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
