// Package ffmpeg locates the ffmpeg and ffprobe executables.
package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	ffmpegEnv  = "SRTLAYERS_FFMPEG_PATH"
	ffprobeEnv = "SRTLAYERS_FFPROBE_PATH"
)

// ErrNotFound is returned when a binary is neither configured nor on PATH.
var ErrNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves both binaries once per process. Environment overrides
// win over PATH.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure(exec.LookPath)
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure(lookPath func(string) (string, error)) (BinaryPaths, error) {
	ffmpegPath, err := resolve(ffmpegEnv, "ffmpeg", lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := resolve(ffprobeEnv, "ffprobe", lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func resolve(env, name string, lookPath func(string) (string, error)) (string, error) {
	if path := os.Getenv(env); path != "" {
		if !fileExists(path) {
			return "", fmt.Errorf("%s points to %q: %w", env, path, ErrNotFound)
		}
		return path, nil
	}

	path, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not on PATH (set %s): %w", name, env, ErrNotFound)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
