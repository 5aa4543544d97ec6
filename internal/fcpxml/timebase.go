package fcpxml

import (
	"fmt"
	"math"
)

// Timebase is a frame duration of Num/Den seconds.
type Timebase struct {
	Num int64
	Den int64
}

// TimebaseFor picks the FCPXML frame duration for fps. NTSC rates such as
// 29.97 use the 1001 numerator.
func TimebaseFor(fps float64) Timebase {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = 30
	}
	ntsc := math.Round(fps * 1001 / 1000)
	if math.Abs(fps-math.Round(fps)) > 0.001 && math.Abs(fps-ntsc*1000/1001) < 0.005 {
		return Timebase{Num: 1001, Den: int64(ntsc) * 1000}
	}
	return Timebase{Num: 100, Den: int64(math.Round(fps * 100))}
}

// nearest frame
func (tb Timebase) Frames(seconds float64) int64 {
	return int64(math.Round(seconds * float64(tb.Den) / float64(tb.Num)))
}

// non-positive frame counts are written as 0s
func (tb Timebase) Format(frames int64) string {
	if frames <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%d/%ds", frames*tb.Num, tb.Den)
}

func (tb Timebase) FormatSeconds(seconds float64) string {
	return tb.Format(tb.Frames(seconds))
}

func (tb Timebase) FrameDuration() string {
	return fmt.Sprintf("%d/%ds", tb.Num, tb.Den)
}
