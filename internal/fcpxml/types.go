// Package fcpxml writes Final Cut Pro XML timelines whose titles are the
// imported subtitle layers.
package fcpxml

import "encoding/xml"

const Version = "1.11"

type FCPXML struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

type Resources struct {
	Formats []Format `xml:"format"`
	Effects []Effect `xml:"effect,omitempty"`
	Assets  []Asset  `xml:"asset,omitempty"`
}

type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         int    `xml:"width,attr"`
	Height        int    `xml:"height,attr"`
	ColorSpace    string `xml:"colorSpace,attr,omitempty"`
}

// Effect is the Motion template titles point at.
type Effect struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	UID  string `xml:"uid,attr"`
}

type Asset struct {
	ID       string   `xml:"id,attr"`
	Name     string   `xml:"name,attr"`
	UID      string   `xml:"uid,attr"`
	Start    string   `xml:"start,attr"`
	Duration string   `xml:"duration,attr"`
	HasVideo string   `xml:"hasVideo,attr"`
	HasAudio string   `xml:"hasAudio,attr,omitempty"`
	Format   string   `xml:"format,attr"`
	MediaRep MediaRep `xml:"media-rep"`
}

type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

type Library struct {
	Events []Event `xml:"event"`
}

type Event struct {
	Name     string    `xml:"name,attr"`
	UID      string    `xml:"uid,attr,omitempty"`
	Projects []Project `xml:"project"`
}

type Project struct {
	Name     string   `xml:"name,attr"`
	UID      string   `xml:"uid,attr,omitempty"`
	Sequence Sequence `xml:"sequence"`
}

type Sequence struct {
	Format      string `xml:"format,attr"`
	Duration    string `xml:"duration,attr"`
	TCStart     string `xml:"tcStart,attr"`
	TCFormat    string `xml:"tcFormat,attr"`
	AudioLayout string `xml:"audioLayout,attr"`
	AudioRate   string `xml:"audioRate,attr"`
	Spine       Spine  `xml:"spine"`
}

// clips are written in slice order, asset clips before gaps
type Spine struct {
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
	Gaps       []Gap       `xml:"gap,omitempty"`
}

type AssetClip struct {
	Ref      string  `xml:"ref,attr"`
	Offset   string  `xml:"offset,attr"`
	Name     string  `xml:"name,attr"`
	Start    string  `xml:"start,attr,omitempty"`
	Duration string  `xml:"duration,attr"`
	Format   string  `xml:"format,attr"`
	TCFormat string  `xml:"tcFormat,attr"`
	Titles   []Title `xml:"title,omitempty"`
}

type Gap struct {
	Name     string  `xml:"name,attr"`
	Offset   string  `xml:"offset,attr"`
	Start    string  `xml:"start,attr,omitempty"`
	Duration string  `xml:"duration,attr"`
	Titles   []Title `xml:"title,omitempty"`
}

type Title struct {
	Ref          string        `xml:"ref,attr"`
	Lane         string        `xml:"lane,attr,omitempty"`
	Offset       string        `xml:"offset,attr"`
	Name         string        `xml:"name,attr"`
	Duration     string        `xml:"duration,attr"`
	Start        string        `xml:"start,attr,omitempty"`
	Params       []Param       `xml:"param,omitempty"`
	Text         *TitleText    `xml:"text,omitempty"`
	TextStyleDef *TextStyleDef `xml:"text-style-def,omitempty"`
}

type Param struct {
	Name  string `xml:"name,attr"`
	Key   string `xml:"key,attr,omitempty"`
	Value string `xml:"value,attr,omitempty"`
}

type TitleText struct {
	TextStyle TextStyleRef `xml:"text-style"`
}

type TextStyleRef struct {
	Ref  string `xml:"ref,attr"`
	Text string `xml:",chardata"`
}

type TextStyleDef struct {
	ID        string    `xml:"id,attr"`
	TextStyle TextStyle `xml:"text-style"`
}

type TextStyle struct {
	Font        string `xml:"font,attr"`
	FontSize    string `xml:"fontSize,attr"`
	FontFace    string `xml:"fontFace,attr,omitempty"`
	FontColor   string `xml:"fontColor,attr"`
	Alignment   string `xml:"alignment,attr"`
	LineSpacing string `xml:"lineSpacing,attr,omitempty"`
}
