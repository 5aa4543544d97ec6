package layer

import (
	"github.com/mgpai22/srtlayers/internal/subtitle"
)

// Track is a Composition backed by a subtitle track, for the file writers.
type Track struct {
	width    int
	height   int
	duration float64
	units    []Unit

	// state saved by Begin
	inTx       bool
	txUnits    int
	txDuration float64
}

func NewTrack(width, height int, duration float64) *Track {
	return &Track{width: width, height: height, duration: duration}
}

func (t *Track) Size() (int, int)            { return t.width, t.height }
func (t *Track) Duration() float64           { return t.duration }
func (t *Track) SetDuration(seconds float64) { t.duration = seconds }

func (t *Track) AddText(unit Unit) error {
	t.units = append(t.units, unit)
	return nil
}

func (t *Track) Begin(name string) {
	t.inTx = true
	t.txUnits = len(t.units)
	t.txDuration = t.duration
}

func (t *Track) Commit() {
	t.inTx = false
}

func (t *Track) Rollback() {
	if !t.inTx {
		return
	}
	t.units = t.units[:t.txUnits]
	t.duration = t.txDuration
	t.inTx = false
}

func (t *Track) Units() []Unit {
	return t.units
}

// Subtitle returns the units as 1-based subtitle entries.
func (t *Track) Subtitle() *subtitle.Subtitle {
	entries := make([]subtitle.Entry, 0, len(t.units))
	for i, unit := range t.units {
		entries = append(entries, subtitle.Entry{
			Index:     i + 1,
			StartTime: subtitle.DurationOf(unit.InPoint),
			EndTime:   subtitle.DurationOf(unit.OutPoint),
			Text:      unit.Text,
		})
	}
	return &subtitle.Subtitle{Entries: entries}
}
