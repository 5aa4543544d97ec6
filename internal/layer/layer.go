// Package layer turns chunks into text layers on a composition.
package layer

import (
	"errors"
	"fmt"
	"math"

	"github.com/mgpai22/srtlayers/internal/subtitle"
)

const undoGroupName = "Import SRT Subtitles"

// ErrNothingToImport is returned when there are no chunks to place.
var ErrNothingToImport = errors.New("no subtitle cues to import")

type Justification string

const (
	JustifyLeft   Justification = "left"
	JustifyCenter Justification = "center"
	JustifyRight  Justification = "right"
)

// text styling for a layer
type Style struct {
	FontName      string
	FontSize      int
	Leading       float64
	Justification Justification
	PositionX     float64
	PositionY     float64
}

// Unit is one text layer.
type Unit struct {
	Name     string
	InPoint  float64
	OutPoint float64
	Text     string
	Style    Style
}

// Composition is the surface text layers are created on.
type Composition interface {
	Size() (width, height int)
	Duration() float64
	SetDuration(seconds float64)
	AddText(unit Unit) error
}

// Transaction groups the changes of one import so they can be undone
// together. Compositions implement it optionally.
type Transaction interface {
	Begin(name string)
	Commit()
	Rollback()
}

type Options struct {
	FontName string
	// 0 derives the size from the composition height
	FontSize int
}

// DefaultStyle centers the text, sizing the font to a fifteenth of the
// height but never below 20.
func DefaultStyle(width, height int, fontName string) Style {
	fontSize := max(20, int(math.Round(float64(height)/15)))
	return Style{
		FontName:      fontName,
		FontSize:      fontSize,
		Leading:       float64(fontSize) * 1.05,
		Justification: JustifyCenter,
		PositionX:     float64(width) / 2,
		PositionY:     float64(height) / 2,
	}
}

// Import creates one text layer per chunk and returns how many were created.
// The composition is extended to a second past the last chunk when it is too
// short. On failure every change of this import is rolled back when the
// composition supports transactions.
func Import(comp Composition, chunks []subtitle.Chunk, opts Options) (n int, err error) {
	if len(chunks) == 0 {
		return 0, ErrNothingToImport
	}

	if tx, ok := comp.(Transaction); ok {
		tx.Begin(undoGroupName)
		defer func() {
			if err != nil {
				tx.Rollback()
				return
			}
			tx.Commit()
		}()
	}

	if lastOut := chunks[len(chunks)-1].End; lastOut > comp.Duration() {
		comp.SetDuration(lastOut + 1)
	}

	width, height := comp.Size()
	style := DefaultStyle(width, height, opts.FontName)
	if opts.FontSize > 0 {
		style.FontSize = opts.FontSize
		style.Leading = float64(opts.FontSize) * 1.05
	}

	for i, chunk := range chunks {
		unit := Unit{
			Name:     fmt.Sprintf("Subtitle %d", i+1),
			InPoint:  chunk.Start,
			OutPoint: chunk.End,
			Text:     chunk.Text,
			Style:    style,
		}
		if err := comp.AddText(unit); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", unit.Name, err)
		}
		n++
	}

	return n, nil
}
