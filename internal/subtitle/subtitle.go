package subtitle

import (
	"math"
	"time"
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete subtitle track
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatTTML Format = "ttml"
)

// Cue is one subtitle entry as found in the source file. Times are in seconds.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

func (c Cue) Duration() time.Duration {
	return DurationOf(c.End - c.Start)
}

// Chunk is one word group cut out of a cue, with its own share of the cue's time.
type Chunk struct {
	Start float64
	End   float64
	Text  string
}

func (c Chunk) Duration() time.Duration {
	return DurationOf(c.End - c.Start)
}

// converts chunk to a writable entry, index is 1-based
func (c Chunk) Entry(index int) Entry {
	return Entry{
		Index:     index,
		StartTime: DurationOf(c.Start),
		EndTime:   DurationOf(c.End),
		Text:      c.Text,
	}
}

// DurationOf rounds seconds to the nearest nanosecond.
func DurationOf(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}

// interface for parsing subtitle text
type Parser interface {
	Parse(text string) []Cue
}
