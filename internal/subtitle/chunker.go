package subtitle

import (
	"math"
	"strings"
)

// Chunker splits cues into groups of GroupSize words and gives every group
// an equal share of the cue's time.
type Chunker struct {
	GroupSize int
}

func NewChunker(groupSize float64) *Chunker {
	return &Chunker{GroupSize: CoerceGroupSize(groupSize)}
}

func (c *Chunker) Chunk(cue Cue) []Chunk {
	return ChunkCue(cue, c.GroupSize)
}

// chunks every cue, keeping cue order
func (c *Chunker) ChunkAll(cues []Cue) []Chunk {
	var chunks []Chunk
	for _, cue := range cues {
		chunks = append(chunks, c.Chunk(cue)...)
	}
	return chunks
}

// CoerceGroupSize floors v and clamps it to at least 1. NaN and infinities
// become 1.
func CoerceGroupSize(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// ChunkCue splits cue into ceil(words/groupSize) chunks. Chunk boundaries are
// computed by multiplication from the cue start, so the last chunk ends at
// cue.End and neighbours share the same boundary value. A zero or negative
// cue duration is passed through as is.
func ChunkCue(cue Cue, groupSize int) []Chunk {
	if groupSize < 1 {
		groupSize = 1
	}

	words := strings.Fields(cue.Text)
	if len(words) == 0 {
		return nil
	}
	// one chunk for the whole cue; also keeps the arithmetic below in range
	if groupSize > len(words) {
		groupSize = len(words)
	}

	chunkCount := (len(words) + groupSize - 1) / groupSize
	chunkDuration := (cue.End - cue.Start) / float64(chunkCount)

	chunks := make([]Chunk, 0, chunkCount)
	for c := 0; c < chunkCount; c++ {
		from := c * groupSize
		to := min(from+groupSize, len(words))

		chunks = append(chunks, Chunk{
			Start: cue.Start + float64(c)*chunkDuration,
			End:   cue.Start + float64(c+1)*chunkDuration,
			Text:  strings.Join(words[from:to], " "),
		})
	}

	return chunks
}
