package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,000
the quick brown fox jumps

2
00:00:05,500 --> 00:00:08,200
<i>over the lazy dog</i>
`

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestOpenSRTFile(t *testing.T) {
	path := writeTemp(t, "test.srt", []byte(sampleSRT))

	cues, err := Open(path, "")
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[1].Text != "over the lazy dog" {
		t.Errorf("cue 1: expected 'over the lazy dog', got %q", cues[1].Text)
	}
}

func TestOpenRejectsOtherExtensions(t *testing.T) {
	path := writeTemp(t, "test.vtt", []byte(sampleSRT))

	if _, err := Open(path, ""); err == nil {
		t.Error("expected error for .vtt file")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.srt"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDecodeLegacyEncoding(t *testing.T) {
	data := []byte("1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9 cr\xe8me\n")

	text, err := Decode(data, "windows-1252")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	cues := Parse(text)
	if len(cues) != 1 || cues[0].Text != "café crème" {
		t.Errorf("expected 'café crème', got %+v", cues)
	}
}

func TestDecodeUTF16WithBOM(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := encoder.Bytes([]byte(sampleSRT))
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	// the byte order mark wins over the configured name
	text, err := Decode(data, "utf-8")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if text != sampleSRT {
		t.Errorf("expected decoded text to match fixture, got %q", text)
	}
}

func TestDecodeNotText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"invalid utf-8", []byte{0x31, 0x0a, 0xff, 0xfe, 0xfd, 0x80}},
		{"nul bytes", []byte("00:00:01,000 --> 00:00:02,000\nhi\x00there")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, "")
			if !errors.Is(err, ErrNotText) {
				t.Errorf("expected ErrNotText, got %v", err)
			}
		})
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	if _, err := Decode([]byte("hi"), "klingon-8"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
