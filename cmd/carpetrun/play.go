package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/carpetrun/internal/audio"
	"github.com/vovakirdan/carpetrun/internal/config"
	"github.com/vovakirdan/carpetrun/internal/core"
	"github.com/vovakirdan/carpetrun/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Up/W       - Fly up
  Down/S     - Fly down
  P/Esc      - Pause
  R/Enter    - Restart (after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Music plays when audio.music in the config points at a .wav or .mp3 file.

Examples:
  carpetrun play
  carpetrun play --mute
  carpetrun play --config ./my-carpet.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable background music")
}

func runPlay(cmd *cobra.Command, args []string) error {
	out, err := openLogOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	logger, err := newLogger(out)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	music := audio.New(audio.Settings{
		Enabled: cfg.Audio.Enabled && !flagMute,
		Path:    cfg.Audio.Music,
		Volume:  cfg.Audio.Volume,
	}, logger)

	screenshots := ""
	if dir := config.Dir(); dir != "" {
		screenshots = filepath.Join(dir, "screenshots")
	}

	return tui.Run(tui.Options{
		Params: cfg.ToParams(),
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		SimInterval:    cfg.Timing.SimInterval(),
		MotionInterval: cfg.Timing.MotionInterval,
		KeyHold:        cfg.Timing.KeyHold,
		Color:          cfg.Render.Color,
		ScreenshotDir:  screenshots,
		Music:          music,
		Logger:         logger,
	})
}
