package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/srtlayers/internal/ffmpeg"
)

// video file information
type Info struct {
	Path      string
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
	Codec     string
	HasAudio  bool
}

// defines interface for video processing operations
type Processor interface {
	// retrieves video file information
	Probe(ctx context.Context, videoPath string) (*Info, error)

	// renders a subtitle file into the picture
	BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error
}

// default implementation using ffmpeg
type DefaultProcessor struct{}

var _ Processor = (*DefaultProcessor)(nil)

func NewProcessor() *DefaultProcessor {
	return &DefaultProcessor{}
}

// Seconds is the duration in seconds.
func (i *Info) Seconds() float64 {
	return i.Duration.Seconds()
}

// reads size, frame rate, duration and audio presence through ffprobe
func (p *DefaultProcessor) Probe(
	ctx context.Context,
	videoPath string,
) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbe(out.Bytes())
	if err != nil {
		return nil, err
	}
	info.Path = videoPath
	return info, nil
}

// burns the subtitle file into the video, copying the audio untouched.
// Cancelling ctx kills the running ffmpeg process.
func (p *DefaultProcessor) BurnSubtitles(
	ctx context.Context,
	videoPath, subtitlePath, outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	cmd := burnCommand(ctx, ffmpegPath, videoPath, subtitlePath, outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg burn cancelled: %w", ctxErr)
		}
		return fmt.Errorf("ffmpeg burn failed: %w: %s", err, lastLine(stderr.String()))
	}

	return nil
}

// ffmpeg-go builds the argument list, the process runs under ctx
func burnCommand(ctx context.Context, ffmpegPath, videoPath, subtitlePath, outputPath string) *exec.Cmd {
	args := ffmpeg.Input(videoPath).
		Output(outputPath, burnArgs(subtitlePath)).
		OverWriteOutput().
		GetArgs()
	return exec.CommandContext(ctx, ffmpegPath, args...)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func burnArgs(subtitlePath string) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"vf":  "subtitles=" + escapeFilterPath(subtitlePath),
		"c:a": "copy",
	}
}

// paths inside a filter graph need ':' and quotes escaped
func escapeFilterPath(path string) string {
	path = filepath.ToSlash(path)
	replacer := strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`, `,`, `\,`)
	return replacer.Replace(path)
}

func parseProbe(data []byte) (*Info, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("failed to parse ffprobe output: invalid JSON")
	}
	result := gjson.ParseBytes(data)

	videoStream := result.Get(`streams.#(codec_type=="video")`)
	if !videoStream.Exists() {
		return nil, errors.New("no video stream found")
	}

	duration := result.Get("format.duration").Float()
	if duration <= 0 {
		duration = videoStream.Get("duration").Float()
	}

	frameRate := parseRate(videoStream.Get("r_frame_rate").String())
	if frameRate <= 0 {
		frameRate = parseRate(videoStream.Get("avg_frame_rate").String())
	}

	return &Info{
		Duration:  time.Duration(duration * float64(time.Second)),
		Width:     int(videoStream.Get("width").Int()),
		Height:    int(videoStream.Get("height").Int()),
		FrameRate: frameRate,
		Codec:     videoStream.Get("codec_name").String(),
		HasAudio:  result.Get(`streams.#(codec_type=="audio")`).Exists(),
	}, nil
}

// ffprobe rates look like "30000/1001"; "0/0" means unknown
func parseRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
