package display

import (
	"fmt"
	"io"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatSnapshot implements Formatter.FormatSnapshot.
func (f *simpleFormatter) FormatSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	if snap == nil {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	todayMessages := 0
	if snap.TodayActivity != nil {
		todayMessages = snap.TodayActivity.MessageCount
	}

	_, err := fmt.Fprintf(w, "Today: %s msgs | Daily: %s%% | Weekly: %s%% | Week elapsed: %s%% | Total: %s msgs / %s sessions\n",
		formatNumber(todayMessages),
		formatFloat(snap.PacingPercent, 0),
		formatFloat(snap.WeeklyPacingPercent, 0),
		formatFloat(snap.WeeklyTimePercent, 0),
		formatNumber(snap.TotalMessages),
		formatNumber(snap.TotalSessions))
	return err
}

// FormatRemote implements Formatter.FormatRemote.
func (f *simpleFormatter) FormatRemote(w io.Writer, usage *webusage.Usage) error {
	if usage == nil {
		_, err := fmt.Fprintln(w, "Remote usage unavailable")
		return err
	}

	_, err := fmt.Fprintf(w, "5h: %s%% | 7d: %s%%\n",
		formatFloat(usage.FiveHour.Utilization*100, 1),
		formatFloat(usage.SevenDay.Utilization*100, 1))
	return err
}
