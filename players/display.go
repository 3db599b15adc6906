package players

import (
	"fmt"
	"io"
	"strings"
)

const (
	faceDownText     = "##"
	playAgainText    = "Play again? [y/n]\n"
	retryText        = "Sorry, I didn't understand %q. Enter a slot number, y, n or q.\n"
	slotRangeText    = "There is no slot %d.\n"
	goodbyeText      = "Thanks for playing!\n"
	instructionsText = "Enter a slot number to turn a card over, or q to quit.\n"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// buildBoardText lays the slots out in rows, each cell showing the slot
// number and either its card or a face-down marker
func buildBoardText(faces []string, columns int) string {
	if columns <= 0 {
		columns = len(faces)
	}

	var b strings.Builder
	row := []string{}
	for i, face := range faces {
		row = append(row, fmt.Sprintf("%2d:%-3s", i, face))
		if (i+1)%columns == 0 || i == len(faces)-1 {
			b.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
			b.WriteString("\n")
			row = row[:0]
		}
	}
	return b.String()
}
