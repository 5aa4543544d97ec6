package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtlayers/internal/config"
	"github.com/mgpai22/srtlayers/internal/logging"
)

var (
	verbose bool
	logger  = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "srtlayers",
	Short: "Turn SRT subtitles into word-group text layers",
	Long: `srtlayers reads a SubRip (.srt) file, splits every cue into groups of a
few words with proportional timing, and creates one text layer per group.

Layers are written as a Final Cut Pro XML timeline or as a subtitle track
(SRT, VTT, ASS, TTML), and can be burned into a video.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

// Execute runs the root command; an interrupt cancels a running ffmpeg.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "YAML config file with import settings")
}

// loads the --config file, or the defaults when none is given
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debugw("Loaded config", "path", path)
	}
	return cfg, nil
}

// applies explicitly set flags over the config
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("words") {
		cfg.GroupSize, _ = flags.GetFloat64("words")
	}
	if flags.Changed("font") {
		cfg.FontName, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		cfg.FontSize, _ = flags.GetInt("font-size")
	}
	if flags.Changed("encoding") {
		cfg.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("frame-rate") {
		cfg.FrameRate, _ = flags.GetFloat64("frame-rate")
	}
	if flags.Changed("duration") {
		cfg.Duration, _ = flags.GetFloat64("duration")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// registers the chunking flags shared by import, chunks and burn
func addChunkFlags(cmd *cobra.Command) {
	cmd.Flags().
		Float64P("words", "w", 3, "Words per text layer (rounded down, at least 1)")
	cmd.Flags().
		String("encoding", "utf-8", "Text encoding of the SRT file (e.g., utf-8, windows-1252, utf-16)")
}

// registers the styling flags shared by import and burn
func addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().String("font", "", "Font name for the text layers")
	cmd.Flags().
		Int("font-size", 0, "Font size (0 derives it from the frame height)")
}
