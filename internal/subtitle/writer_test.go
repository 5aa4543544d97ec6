package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chunkedSubtitle() *Subtitle {
	cue := Cue{Start: 1, End: 4, Text: "the quick brown fox jumps"}
	sub := &Subtitle{}
	for i, chunk := range ChunkCue(cue, 2) {
		sub.Entries = append(sub.Entries, chunk.Entry(i+1))
	}
	return sub
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(data)
}

func TestSRTWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chunks.srt")

	writer, err := NewWriter(FormatSRT)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(chunkedSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content := readFile(t, path)
	if !strings.Contains(content, "2\n00:00:02,000 --> 00:00:03,000\nbrown fox\n") {
		t.Errorf("unexpected SRT output:\n%s", content)
	}

	cues := Parse(content)
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues after re-parsing, got %d", len(cues))
	}
	if cues[2].Text != "jumps" || cues[2].Start != 3 || cues[2].End != 4 {
		t.Errorf("unexpected last cue %+v", cues[2])
	}
}

func TestVTTWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.vtt")

	writer, _ := NewWriter(FormatVTT)
	if err := writer.Write(chunkedSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content := readFile(t, path)
	if !strings.HasPrefix(content, "WEBVTT\n\n") {
		t.Errorf("missing WEBVTT header:\n%s", content)
	}
	if !strings.Contains(content, "00:00:01.000 --> 00:00:02.000\nthe quick") {
		t.Errorf("unexpected VTT output:\n%s", content)
	}
}

func TestASSWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.ass")

	writer, _ := NewWriter(FormatASS)
	ass := writer.(*ASSWriter)
	ass.FontName = "Helvetica"
	ass.FontSize = 72
	ass.PlayResX = 1280
	ass.PlayResY = 720
	if err := writer.Write(chunkedSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content := readFile(t, path)
	for _, want := range []string{
		"PlayResX: 1280\n",
		"PlayResY: 720\n",
		"Style: Default,Helvetica,72,",
		"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,jumps\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected ASS output to contain %q:\n%s", want, content)
		}
	}
}

func TestTTMLWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.ttml")

	writer, err := NewWriter(FormatTTML)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(chunkedSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content := readFile(t, path)
	for _, want := range []string{"<tt", "the quick", "brown fox", "jumps"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected TTML output to contain %q:\n%s", want, content)
		}
	}
}

func TestWriterClampsNegativeTimes(t *testing.T) {
	if got := formatSRTTime(-DurationOf(1.5)); got != "00:00:00,000" {
		t.Errorf("expected zero timestamp, got %s", got)
	}
}

func TestFormatExtensions(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.srt", FormatSRT},
		{"a.VTT", FormatVTT},
		{"a.ssa", FormatASS},
		{"a.ttml", FormatTTML},
		{"a.unknown", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := GetFormatFromExtension(tt.path)
			if got != tt.want {
				t.Errorf("GetFormatFromExtension(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewWriterRejectsUnknownFormat(t *testing.T) {
	if _, err := NewWriter(Format("sbv")); err == nil {
		t.Error("expected error for unknown format")
	}
}
