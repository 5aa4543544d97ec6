package fcpxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mgpai22/srtlayers/internal/layer"
)

const (
	formatID = "r1"
	effectID = "r2"
	assetID  = "r3"

	basicTitleUID = ".../Titles.localized/Bumper:Opener.localized/Basic Title.localized/Basic Title.moti"
	positionKey   = "9999/999166631/999166633/1/100/101"
	defaultFont   = "Helvetica"
)

type Options struct {
	Name      string
	Width     int
	Height    int
	FrameRate float64
	// initial sequence length in seconds
	Duration float64

	// optional reference clip the titles are connected to
	VideoPath     string
	VideoDuration float64
	VideoHasAudio bool
}

// connected title with its absolute placement in frames
type placedTitle struct {
	start int64
	end   int64
	title Title
}

// Document is an FCPXML project that receives text layers as titles.
// It implements layer.Composition and layer.Transaction.
type Document struct {
	opts     Options
	tb       Timebase
	duration float64
	titles   []placedTitle

	inTx       bool
	txTitles   int
	txDuration float64
}

var (
	_ layer.Composition = (*Document)(nil)
	_ layer.Transaction = (*Document)(nil)
)

func New(opts Options) *Document {
	if opts.Name == "" {
		opts.Name = "Subtitles"
	}
	duration := max(opts.Duration, 0)
	if opts.VideoPath != "" {
		duration = max(duration, opts.VideoDuration)
	}
	return &Document{
		opts:     opts,
		tb:       TimebaseFor(opts.FrameRate),
		duration: duration,
	}
}

func (d *Document) Size() (int, int)            { return d.opts.Width, d.opts.Height }
func (d *Document) Duration() float64           { return d.duration }
func (d *Document) SetDuration(seconds float64) { d.duration = seconds }
func (d *Document) Timebase() Timebase          { return d.tb }

func (d *Document) AddText(unit layer.Unit) error {
	if strings.TrimSpace(unit.Text) == "" {
		return fmt.Errorf("title %q has no text", unit.Name)
	}

	styleID := fmt.Sprintf("ts%d", len(d.titles)+1)
	start := d.tb.Frames(unit.InPoint)
	end := d.tb.Frames(unit.OutPoint)

	font := unit.Style.FontName
	if font == "" {
		font = defaultFont
	}

	title := Title{
		Ref:      effectID,
		Lane:     "1",
		Offset:   d.tb.Format(start),
		Name:     unit.Name,
		Duration: d.tb.Format(end - start),
		Start:    "0s",
		Params: []Param{{
			Name:  "Position",
			Key:   positionKey,
			Value: d.position(unit.Style),
		}},
		Text: &TitleText{
			TextStyle: TextStyleRef{Ref: styleID, Text: unit.Text},
		},
		TextStyleDef: &TextStyleDef{
			ID: styleID,
			TextStyle: TextStyle{
				Font:        font,
				FontSize:    fmt.Sprintf("%d", unit.Style.FontSize),
				FontFace:    "Regular",
				FontColor:   "1 1 1 1",
				Alignment:   alignment(unit.Style.Justification),
				LineSpacing: lineSpacing(unit.Style),
			},
		},
	}

	d.titles = append(d.titles, placedTitle{start: start, end: end, title: title})
	return nil
}

func (d *Document) Begin(name string) {
	d.inTx = true
	d.txTitles = len(d.titles)
	d.txDuration = d.duration
}

func (d *Document) Commit() {
	d.inTx = false
}

func (d *Document) Rollback() {
	if !d.inTx {
		return
	}
	d.titles = d.titles[:d.txTitles]
	d.duration = d.txDuration
	d.inTx = false
}

// Titles returns the titles in creation order.
func (d *Document) Titles() []Title {
	titles := make([]Title, len(d.titles))
	for i, pt := range d.titles {
		titles[i] = pt.title
	}
	return titles
}

// Build assembles the FCPXML tree. Titles hang off the reference clip when
// there is one; anything past its end goes on a trailing gap.
func (d *Document) Build() *FCPXML {
	seqDuration := d.tb.FormatSeconds(d.duration)

	doc := &FCPXML{
		Version: Version,
		Resources: Resources{
			Formats: []Format{{
				ID:            formatID,
				FrameDuration: d.tb.FrameDuration(),
				Width:         d.opts.Width,
				Height:        d.opts.Height,
				ColorSpace:    "1-1-1 (Rec. 709)",
			}},
			Effects: []Effect{{
				ID:   effectID,
				Name: "Basic Title",
				UID:  basicTitleUID,
			}},
		},
	}

	var spine Spine
	hasClip := d.opts.VideoPath != "" && d.opts.VideoDuration > 0
	gapFrom := 0.0
	if hasClip {
		doc.Resources.Assets = append(doc.Resources.Assets, d.videoAsset())

		clipEnd := d.tb.Frames(d.opts.VideoDuration)
		clip := AssetClip{
			Ref:      assetID,
			Offset:   "0s",
			Name:     strings.TrimSuffix(filepath.Base(d.opts.VideoPath), filepath.Ext(d.opts.VideoPath)),
			Start:    "0s",
			Duration: d.tb.Format(clipEnd),
			Format:   formatID,
			TCFormat: "NDF",
		}
		for _, pt := range d.titles {
			if pt.start >= clipEnd {
				continue
			}
			title := pt.title
			// cut at the clip end, the rest continues on the gap
			if pt.end > clipEnd {
				title.Duration = d.tb.Format(clipEnd - pt.start)
			}
			clip.Titles = append(clip.Titles, title)
		}
		spine.AssetClips = append(spine.AssetClips, clip)
		gapFrom = d.opts.VideoDuration
	}

	if !hasClip || d.duration > gapFrom {
		// the gap starts at its own offset so title offsets stay absolute
		gapStart := d.tb.Frames(gapFrom)
		offset := d.tb.Format(gapStart)
		gap := Gap{
			Name:     "Gap",
			Offset:   offset,
			Start:    offset,
			Duration: d.tb.Format(d.tb.Frames(d.duration) - gapStart),
		}
		for _, pt := range d.titles {
			switch {
			case !hasClip || pt.start >= gapStart:
				gap.Titles = append(gap.Titles, pt.title)
			case pt.end > gapStart:
				gap.Titles = append(gap.Titles, continuation(pt, gapStart, d.tb))
			}
		}
		spine.Gaps = append(spine.Gaps, gap)
	}

	doc.Library = Library{
		Events: []Event{{
			Name: d.opts.Name,
			UID:  stableUID("event", d.opts.Name),
			Projects: []Project{{
				Name: d.opts.Name,
				UID:  stableUID("project", d.opts.Name),
				Sequence: Sequence{
					Format:      formatID,
					Duration:    seqDuration,
					TCStart:     "0s",
					TCFormat:    "NDF",
					AudioLayout: "stereo",
					AudioRate:   "48k",
					Spine:       spine,
				},
			}},
		}},
	}

	return doc
}

// remainder of a title cut at from; its text style is defined on the first part
func continuation(pt placedTitle, from int64, tb Timebase) Title {
	title := pt.title
	title.Offset = tb.Format(from)
	title.Duration = tb.Format(pt.end - from)
	title.TextStyleDef = nil
	return title
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	output, err := xml.MarshalIndent(d.Build(), "", "    ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal FCPXML: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<!DOCTYPE fcpxml>\n")
	buf.Write(output)
	buf.WriteString("\n")

	return buf.WriteTo(w)
}

func (d *Document) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FCPXML file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := d.WriteTo(file); err != nil {
		return err
	}
	return file.Close()
}

func (d *Document) videoAsset() Asset {
	absPath, err := filepath.Abs(d.opts.VideoPath)
	if err != nil {
		absPath = d.opts.VideoPath
	}
	name := filepath.Base(d.opts.VideoPath)

	asset := Asset{
		ID:       assetID,
		Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		UID:      stableUID("asset", name),
		Start:    "0s",
		Duration: d.tb.FormatSeconds(d.opts.VideoDuration),
		HasVideo: "1",
		Format:   formatID,
		MediaRep: MediaRep{
			Kind: "original-media",
			Src:  "file://" + filepath.ToSlash(absPath),
		},
	}
	if d.opts.VideoHasAudio {
		asset.HasAudio = "1"
	}
	return asset
}

// title position is relative to the frame center, y pointing up
func (d *Document) position(style layer.Style) string {
	x := style.PositionX - float64(d.opts.Width)/2
	y := float64(d.opts.Height)/2 - style.PositionY
	return fmt.Sprintf("%g %g", x, y)
}

func alignment(j layer.Justification) string {
	switch j {
	case layer.JustifyLeft:
		return "left"
	case layer.JustifyRight:
		return "right"
	default:
		return "center"
	}
}

// FCP line spacing is the space added on top of the font size
func lineSpacing(style layer.Style) string {
	extra := style.Leading - float64(style.FontSize)
	if extra <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", extra)
}

// same name, same UID, so re-imports are recognized
func stableUID(kind, name string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("srtlayers/"+kind+"/"+name))
	return strings.ToUpper(id.String())
}
