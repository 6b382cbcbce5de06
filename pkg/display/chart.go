package display

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
)

// writeWeeklyTrend plots message counts over the last seven days as an
// ASCII line chart.
func (f *tableFormatter) writeWeeklyTrend(w io.Writer, snap *snapshot.Snapshot) error {
	if len(snap.WeeklyActivity) < 2 {
		return nil
	}

	if err := writeHeader(w, "Weekly Trend", f.config.Compact); err != nil {
		return err
	}

	data := make([]float64, len(snap.WeeklyActivity))
	for i, day := range snap.WeeklyActivity {
		data[i] = float64(day.MessageCount)
	}

	width := f.config.Width - 12
	if width < 20 {
		width = 20
	}
	height := 6
	if f.config.Compact {
		height = 3
	}

	first := snap.WeeklyActivity[0].Date
	last := snap.WeeklyActivity[len(snap.WeeklyActivity)-1].Date
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("messages/day, %s to %s", first, last)),
	)

	if _, err := fmt.Fprintln(w, graph); err != nil {
		return err
	}
	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}
