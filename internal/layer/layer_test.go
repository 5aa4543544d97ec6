package layer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mgpai22/srtlayers/internal/subtitle"
)

// composition without transaction support that fails on a chosen layer
type flakyComp struct {
	width, height int
	duration      float64
	units         []Unit
	failAt        int
}

func (c *flakyComp) Size() (int, int)            { return c.width, c.height }
func (c *flakyComp) Duration() float64           { return c.duration }
func (c *flakyComp) SetDuration(seconds float64) { c.duration = seconds }

func (c *flakyComp) AddText(unit Unit) error {
	if c.failAt > 0 && len(c.units)+1 == c.failAt {
		return errors.New("layer limit reached")
	}
	c.units = append(c.units, unit)
	return nil
}

// track that fails on a chosen layer but keeps transaction support
type flakyTrack struct {
	*Track
	failAt int
}

func (t *flakyTrack) AddText(unit Unit) error {
	if len(t.Units())+1 == t.failAt {
		return errors.New("layer limit reached")
	}
	return t.Track.AddText(unit)
}

func exampleChunks() []subtitle.Chunk {
	cues := subtitle.Parse("1\n00:00:01,000 --> 00:00:04,000\nthe quick brown fox jumps\n")
	return subtitle.NewChunker(2).ChunkAll(cues)
}

func TestImportCreatesOneLayerPerChunk(t *testing.T) {
	track := NewTrack(1920, 1080, 60)

	n, err := Import(track, exampleChunks(), Options{FontName: "Arial-BoldMT"})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 layers, got %d", n)
	}

	units := track.Units()
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Name != "Subtitle 1" || units[2].Name != "Subtitle 3" {
		t.Errorf("unexpected names %q, %q", units[0].Name, units[2].Name)
	}
	if units[1].Text != "brown fox" || units[1].InPoint != 2 || units[1].OutPoint != 3 {
		t.Errorf("unexpected second unit %+v", units[1])
	}

	want := Style{
		FontName:      "Arial-BoldMT",
		FontSize:      72,
		Leading:       units[0].Style.Leading,
		Justification: JustifyCenter,
		PositionX:     960,
		PositionY:     540,
	}
	if units[0].Style != want {
		t.Errorf("expected style %+v, got %+v", want, units[0].Style)
	}
	if math.Abs(units[0].Style.Leading-75.6) > 1e-9 {
		t.Errorf("expected leading 75.6, got %v", units[0].Style.Leading)
	}

	// long enough already
	if track.Duration() != 60 {
		t.Errorf("expected duration 60, got %v", track.Duration())
	}
}

func TestImportExtendsDuration(t *testing.T) {
	track := NewTrack(1280, 720, 2)

	if _, err := Import(track, exampleChunks(), Options{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if track.Duration() != 5 {
		t.Errorf("expected duration 5, got %v", track.Duration())
	}
}

func TestImportNothingToImport(t *testing.T) {
	track := NewTrack(1920, 1080, 10)

	n, err := Import(track, nil, Options{})
	if !errors.Is(err, ErrNothingToImport) {
		t.Errorf("expected ErrNothingToImport, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 layers, got %d", n)
	}
	if track.Duration() != 10 {
		t.Errorf("expected duration untouched, got %v", track.Duration())
	}
}

func TestImportFontSizeOverride(t *testing.T) {
	track := NewTrack(1920, 1080, 0)

	if _, err := Import(track, exampleChunks(), Options{FontSize: 40}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	style := track.Units()[0].Style
	if style.FontSize != 40 {
		t.Errorf("expected font size 40, got %d", style.FontSize)
	}
	if math.Abs(style.Leading-42) > 1e-9 {
		t.Errorf("expected leading 42, got %v", style.Leading)
	}
}

func TestImportRollsBackOnFailure(t *testing.T) {
	track := &flakyTrack{Track: NewTrack(1920, 1080, 1), failAt: 3}

	n, err := Import(track, exampleChunks(), Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Subtitle 3") {
		t.Errorf("expected failing layer in error, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 layers, got %d", n)
	}
	if len(track.Units()) != 0 {
		t.Errorf("expected rollback to remove all units, got %d", len(track.Units()))
	}
	if track.Duration() != 1 {
		t.Errorf("expected duration restored to 1, got %v", track.Duration())
	}
}

func TestImportWithoutTransactionKeepsPartialWork(t *testing.T) {
	comp := &flakyComp{width: 1920, height: 1080, failAt: 2}

	if _, err := Import(comp, exampleChunks(), Options{}); err == nil {
		t.Fatal("expected error")
	}
	if len(comp.units) != 1 {
		t.Errorf("expected 1 unit left behind, got %d", len(comp.units))
	}
}

func TestDefaultStyleMinimumFontSize(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{1080, 72},
		{720, 48},
		{240, 20},
		{100, 20},
		{308, 21},
	}

	for _, tt := range tests {
		if got := DefaultStyle(640, tt.height, "").FontSize; got != tt.want {
			t.Errorf("height %d: expected font size %d, got %d", tt.height, tt.want, got)
		}
	}
}

func TestTrackSubtitle(t *testing.T) {
	track := NewTrack(1920, 1080, 0)
	if _, err := Import(track, exampleChunks(), Options{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	sub := track.Subtitle()
	if len(sub.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sub.Entries))
	}
	want := subtitle.Entry{
		Index:     3,
		StartTime: subtitle.DurationOf(3),
		EndTime:   subtitle.DurationOf(4),
		Text:      "jumps",
	}
	if sub.Entries[0].Index != 1 {
		t.Errorf("expected 1-based index, got %d", sub.Entries[0].Index)
	}
	if sub.Entries[2] != want {
		t.Errorf("expected %+v, got %+v", want, sub.Entries[2])
	}
}
