package subtitle

import (
	"regexp"
	"strconv"
	"strings"
)

// the timecode line may sit on any of the first few lines of a block
const timecodeSearchLines = 3

var (
	blockSeparator = regexp.MustCompile(`\n{2,}`)
	timecodeRegex  = regexp.MustCompile(
		`(\d{1,2}:\d{2}:\d{2})[,.](\d{1,3})\s*-->\s*(\d{1,2}:\d{2}:\d{2})[,.](\d{1,3})`,
	)
	tagRegex = regexp.MustCompile(`<[^>]*(?:>|$)`)
)

// why a block did not produce a cue
type SkipReason string

const (
	SkipNoTimecode SkipReason = "no timecode in first three lines"
	SkipEmptyText  SkipReason = "empty text"
)

// SRTParser parses loosely formatted SubRip text. Malformed blocks are
// skipped, never reported as errors; OnSkip observes them when set.
type SRTParser struct {
	OnSkip func(block int, reason SkipReason)
}

// Parse with a zero SRTParser.
func Parse(text string) []Cue {
	return (&SRTParser{}).Parse(text)
}

func (p *SRTParser) Parse(text string) []Cue {
	text = strings.TrimPrefix(NormalizeLineEndings(text), "\ufeff")

	var cues []Cue
	for i, block := range blockSeparator.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		cue, reason, ok := parseBlock(block)
		if !ok {
			p.skip(i, reason)
			continue
		}
		cues = append(cues, cue)
	}

	return cues
}

func (p *SRTParser) skip(block int, reason SkipReason) {
	if p.OnSkip != nil {
		p.OnSkip(block, reason)
	}
}

func parseBlock(block string) (Cue, SkipReason, bool) {
	lines := strings.Split(block, "\n")

	timeLine := -1
	var matches []string
	for k := 0; k < len(lines) && k < timecodeSearchLines; k++ {
		if matches = timecodeRegex.FindStringSubmatch(lines[k]); matches != nil {
			timeLine = k
			break
		}
	}
	if timeLine == -1 {
		return Cue{}, SkipNoTimecode, false
	}

	text := strings.Join(lines[timeLine+1:], " ")
	text = strings.TrimSpace(StripTags(text))
	if text == "" {
		return Cue{}, SkipEmptyText, false
	}

	return Cue{
		Start: ToSeconds(matches[1], matches[2]),
		End:   ToSeconds(matches[3], matches[4]),
		Text:  text,
	}, "", true
}

// ToSeconds converts an H:MM:SS clock and its fractional digits to seconds.
// The fraction is right-padded to milliseconds, so "5" means 500ms.
func ToSeconds(hms, frac string) float64 {
	var h, m, s int
	parts := strings.Split(hms, ":")
	if len(parts) == 3 {
		h, _ = strconv.Atoi(parts[0])
		m, _ = strconv.Atoi(parts[1])
		s, _ = strconv.Atoi(parts[2])
	}

	ms, _ := strconv.Atoi((frac + "000")[:3])

	return float64(h*3600+m*60+s) + float64(ms)/1000
}

// StripTags removes markup such as <i> or <font color="red">, including an
// unterminated tag running to the end of the string.
func StripTags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

func NormalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
