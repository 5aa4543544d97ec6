package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtlayers/internal/config"
	"github.com/mgpai22/srtlayers/internal/fcpxml"
	"github.com/mgpai22/srtlayers/internal/layer"
	"github.com/mgpai22/srtlayers/internal/subtitle"
	"github.com/mgpai22/srtlayers/internal/video"
)

const formatFCPXML = subtitle.Format(config.FormatFCPXML)

// ffprobe/ffmpeg access for import --video and burn
var videoProcessor video.Processor = video.NewProcessor()

var importCmd = &cobra.Command{
	Use:   "import [srt_file]",
	Short: "Import an SRT file as word-group text layers",
	Long: `Import a SubRip file and create one text layer per group of words.

Each cue's time is split evenly between its word groups, so a group of
two words in a four-word cue gets half of the cue's duration.

The layers are written as a Final Cut Pro XML timeline by default, or as
an SRT, VTT, ASS or TTML track. With --video the composition takes the
video's size, frame rate and duration, and FCPXML titles are connected
to the clip.

Examples:
  srtlayers import talk.srt
  srtlayers import talk.srt --words 2 --font "Helvetica Neue"
  srtlayers import talk.srt -f ass -o talk_words.ass
  srtlayers import talk.srt --video talk.mp4 --encoding windows-1252`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	addChunkFlags(importCmd)
	addStyleFlags(importCmd)
	importCmd.Flags().
		StringP("format", "f", "fcpxml", "Output format (fcpxml, srt, vtt, ass, ttml)")
	importCmd.Flags().Int("width", 1920, "Composition width in pixels")
	importCmd.Flags().Int("height", 1080, "Composition height in pixels")
	importCmd.Flags().Float64("frame-rate", 29.97, "Composition frame rate")
	importCmd.Flags().
		Float64("duration", 0, "Initial composition duration in seconds")
	importCmd.Flags().
		String("video", "", "Reference video to take size, frame rate and duration from")
}

// resolved settings of one import
type importJob struct {
	Input  string
	Output string
	Format subtitle.Format
	Config *config.Config
	Video  *video.Info
}

func runImport(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	format, err := resolveFormat(cmd, cfg, outputPath)
	if err != nil {
		return err
	}

	job := importJob{Input: srtPath, Output: outputPath, Format: format, Config: cfg}

	if videoPath, _ := cmd.Flags().GetString("video"); videoPath != "" {
		info, err := videoProcessor.Probe(ctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		logger.Infow("Probed reference video",
			"video", videoPath,
			"width", info.Width,
			"height", info.Height,
			"frame_rate", info.FrameRate,
			"duration", info.Duration.String(),
		)
		job.Video = info
		applyVideo(cmd, cfg, info)
	}

	if job.Output == "" {
		job.Output = defaultOutputPath(srtPath, format)
	}

	logger.Infow("Starting import",
		"input", srtPath,
		"output", job.Output,
		"format", string(format),
		"words", cfg.GroupSizeInt(),
	)

	n, err := runImportJob(job)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(job.Output)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d subtitle layers\n", n)
	fmt.Fprintf(cmd.OutOrStdout(), "  Output: %s\n", absOutput)

	return nil
}

// the probed video fills in whatever the flags left unset
func applyVideo(cmd *cobra.Command, cfg *config.Config, info *video.Info) {
	flags := cmd.Flags()
	if info.Width > 0 && info.Height > 0 && !flags.Changed("width") && !flags.Changed("height") {
		cfg.Width = info.Width
		cfg.Height = info.Height
	}
	if info.FrameRate > 0 && !flags.Changed("frame-rate") {
		cfg.FrameRate = info.FrameRate
	}
	if !flags.Changed("duration") {
		cfg.Duration = max(cfg.Duration, info.Seconds())
	}
}

// parses, chunks and writes one file, returning the number of layers
func runImportJob(job importJob) (int, error) {
	cfg := job.Config

	chunks, err := chunkFile(job.Input, cfg)
	if err != nil {
		return 0, err
	}

	opts := layer.Options{FontName: cfg.FontName, FontSize: cfg.FontSize}

	if job.Format == formatFCPXML {
		docOpts := fcpxml.Options{
			Name:      strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input)),
			Width:     cfg.Width,
			Height:    cfg.Height,
			FrameRate: cfg.FrameRate,
			Duration:  cfg.Duration,
		}
		if job.Video != nil {
			docOpts.VideoPath = job.Video.Path
			docOpts.VideoDuration = job.Video.Seconds()
			docOpts.VideoHasAudio = job.Video.HasAudio
		}

		doc := fcpxml.New(docOpts)
		n, err := importChunks(doc, chunks, opts, job.Input)
		if err != nil {
			return 0, err
		}
		if err := doc.Write(job.Output); err != nil {
			return 0, fmt.Errorf("failed to write FCPXML: %w", err)
		}
		return n, nil
	}

	track := layer.NewTrack(cfg.Width, cfg.Height, cfg.Duration)
	n, err := importChunks(track, chunks, opts, job.Input)
	if err != nil {
		return 0, err
	}
	if err := writeTrack(track, job.Format, job.Output); err != nil {
		return 0, err
	}
	return n, nil
}

func importChunks(comp layer.Composition, chunks []subtitle.Chunk, opts layer.Options, input string) (int, error) {
	n, err := layer.Import(comp, chunks, opts)
	if errors.Is(err, layer.ErrNothingToImport) {
		return 0, fmt.Errorf("no subtitle cues found in %s", input)
	}
	if err != nil {
		return 0, fmt.Errorf("import failed: %w", err)
	}
	logger.Debugw("Created text layers", "count", n, "duration", comp.Duration())
	return n, nil
}

// writes the track, carrying the layer style into ASS output
func writeTrack(track *layer.Track, format subtitle.Format, outputPath string) error {
	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	if ass, ok := writer.(*subtitle.ASSWriter); ok {
		width, height := track.Size()
		ass.PlayResX = width
		ass.PlayResY = height
		if units := track.Units(); len(units) > 0 {
			ass.FontSize = units[0].Style.FontSize
			if units[0].Style.FontName != "" {
				ass.FontName = units[0].Style.FontName
			}
		}
	}

	sub := track.Subtitle()
	sub.Format = string(format)
	if err := writer.Write(sub, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	return nil
}

// reads and chunks an SRT file; skipped blocks are logged at debug level
func chunkFile(path string, cfg *config.Config) ([]subtitle.Chunk, error) {
	parser := &subtitle.SRTParser{
		OnSkip: func(block int, reason subtitle.SkipReason) {
			logger.Debugw("Skipped block", "file", path, "block", block, "reason", string(reason))
		},
	}

	cues, err := subtitle.OpenWith(parser, path, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	for i, cue := range cues {
		// kept as is, the chunks inherit the degenerate timing
		if cue.Duration() <= 0 {
			logger.Warnw("Cue has no positive duration",
				"file", path,
				"cue", i+1,
				"start", cue.Start,
				"end", cue.End,
			)
		}
	}

	chunks := subtitle.NewChunker(cfg.GroupSize).ChunkAll(cues)
	logger.Debugw("Chunked cues", "cues", len(cues), "chunks", len(chunks))
	return chunks, nil
}

// an explicit --format wins, then the --output extension, then the config
func resolveFormat(cmd *cobra.Command, cfg *config.Config, outputPath string) (subtitle.Format, error) {
	if outputPath != "" && !cmd.Flags().Changed("format") {
		if format := formatFromOutput(outputPath); format != "" {
			return format, nil
		}
	}
	return parseFormat(cfg.Format)
}

func formatFromOutput(path string) subtitle.Format {
	if strings.EqualFold(filepath.Ext(path), ".fcpxml") {
		return formatFCPXML
	}
	return subtitle.GetFormatFromExtension(path)
}

func parseFormat(s string) (subtitle.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", config.FormatFCPXML:
		return formatFCPXML, nil
	case "srt":
		return subtitle.FormatSRT, nil
	case "vtt":
		return subtitle.FormatVTT, nil
	case "ass":
		return subtitle.FormatASS, nil
	case "ttml":
		return subtitle.FormatTTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use fcpxml, srt, vtt, ass, or ttml", s)
	}
}

// next to the input; track formats get a suffix so an SRT never overwrites its source
func defaultOutputPath(input string, format subtitle.Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if format == formatFCPXML {
		return base + ".fcpxml"
	}
	return base + "_words" + subtitle.GetExtensionForFormat(format)
}
