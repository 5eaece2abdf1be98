package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vimdrill/internal/model"
)

const minInstructionWidth = 12

var challengeHeaders = []string{"#", "ID", "Level", "Par", "Command", "Instruction"}

// RenderChallenges writes one row per challenge. The instruction column is
// truncated so each line fits within width; width <= 0 disables truncation.
func RenderChallenges(w io.Writer, challenges []model.Challenge, width int) error {
	rows := make([][]string, 0, len(challenges))
	for i, c := range challenges {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.ID,
			string(c.Difficulty),
			strconv.Itoa(c.ParKeystrokes),
			commandLabel(c.ExpectedCommand),
			oneLine(c.Instruction),
		})
	}
	if width > 0 {
		fitInstructions(rows, width)
	}
	for _, line := range formatTable(challengeHeaders, rows, map[int]bool{0: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func fitInstructions(rows [][]string, width int) {
	last := len(challengeHeaders) - 1
	widths := columnWidths(challengeHeaders[:last], rows, last)
	used := 0
	for _, w := range widths {
		used += w + 1
	}
	avail := width - used
	if avail < minInstructionWidth {
		avail = minInstructionWidth
	}
	for _, row := range rows {
		row[last] = runewidth.Truncate(row[last], avail, "…")
	}
}

func commandLabel(cmd string) string {
	if cmd == "" {
		return "-"
	}
	return cmd
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
