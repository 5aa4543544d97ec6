package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtlayers/internal/subtitle"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks [srt_file]",
	Short: "Print the word groups of an SRT file",
	Long: `Print the word groups an import would create, one per line with its
start and end time in seconds.

Examples:
  srtlayers chunks talk.srt
  srtlayers chunks talk.srt --words 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)

	addChunkFlags(chunksCmd)
	chunksCmd.Flags().Bool("json", false, "Print the groups as a JSON array")
}

// JSON shape of one printed chunk
type chunkJSON struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

func runChunks(cmd *cobra.Command, args []string) error {
	srtPath := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	chunks, err := chunkFile(srtPath, cfg)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no subtitle cues found in %s", srtPath)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	return printChunks(cmd.OutOrStdout(), chunks, asJSON)
}

func printChunks(w io.Writer, chunks []subtitle.Chunk, asJSON bool) error {
	if asJSON {
		out := make([]chunkJSON, len(chunks))
		for i, c := range chunks {
			out[i] = chunkJSON{
				Start:    c.Start,
				End:      c.End,
				Duration: c.Duration().Seconds(),
				Text:     c.Text,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, c := range chunks {
		if _, err := fmt.Fprintf(w, "%.3f\t%.3f\t%s\n", c.Start, c.End, c.Text); err != nil {
			return err
		}
	}
	return nil
}
