package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtlayers/internal/config"
	"github.com/mgpai22/srtlayers/internal/layer"
	"github.com/mgpai22/srtlayers/internal/subtitle"
	"github.com/mgpai22/srtlayers/internal/video"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file] [srt_file]",
	Short: "Burn word-group subtitles into a video",
	Long: `Split an SRT file into word groups, render them as an ASS track sized
to the video, and burn the track into a copy of the video with ffmpeg.
The audio is copied unchanged.

Examples:
  srtlayers burn talk.mp4 talk.srt
  srtlayers burn talk.mp4 talk.srt --words 2 -o talk_words.mp4`,
	Args: cobra.ExactArgs(2),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)

	addChunkFlags(burnCmd)
	addStyleFlags(burnCmd)
}

func runBurn(cmd *cobra.Command, args []string) error {
	videoPath, srtPath := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = burnOutputPath(videoPath)
	}

	n, err := runBurnJob(cmd.Context(), videoProcessor, videoPath, srtPath, outputPath, cfg)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Burned %d subtitle layers: %s\n", n, absOutput)

	return nil
}

// probes the video, renders the chunks as an ASS track sized to it, and burns it in
func runBurnJob(
	ctx context.Context,
	proc video.Processor,
	videoPath, srtPath, outputPath string,
	cfg *config.Config,
) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := proc.Probe(ctx, videoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to probe video: %w", err)
	}

	chunks, err := chunkFile(srtPath, cfg)
	if err != nil {
		return 0, err
	}

	track := layer.NewTrack(info.Width, info.Height, info.Seconds())
	n, err := importChunks(track, chunks, layer.Options{FontName: cfg.FontName, FontSize: cfg.FontSize}, srtPath)
	if err != nil {
		return 0, err
	}

	tempDir, err := os.MkdirTemp("", "srtlayers-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	assPath := filepath.Join(tempDir, "layers.ass")
	if err := writeTrack(track, subtitle.FormatASS, assPath); err != nil {
		return 0, err
	}

	logger.Infow("Burning subtitles",
		"video", videoPath,
		"output", outputPath,
		"layers", n,
	)

	if err := proc.BurnSubtitles(ctx, videoPath, assPath, outputPath); err != nil {
		return 0, err
	}
	return n, nil
}

func burnOutputPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + "_subtitled" + ext
}
