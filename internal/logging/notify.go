package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Notifier prints the player-facing console lines that are not log records.
type Notifier struct {
	w      io.Writer
	green  *color.Color
	yellow *color.Color
}

// NewNotifier writes to w; noColor disables colour output process-wide.
func NewNotifier(w io.Writer, noColor bool) *Notifier {
	color.NoColor = noColor

	return &Notifier{
		w:      w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
	}
}

// Finished announces a completed lap.
func (n *Notifier) Finished(lap int) {
	fmt.Fprintln(n.w, n.green.Sprint("finish"), n.yellow.Sprintf("(lap %d)", lap))
}

// Summary prints the end-of-run totals.
func (n *Notifier) Summary(ticks uint64, laps, bounces int) {
	fmt.Fprintf(n.w, "%s %d ticks, %s, %d bounces\n",
		n.green.Sprint("race over:"), ticks, n.yellow.Sprintf("%d laps", laps), bounces)
}
