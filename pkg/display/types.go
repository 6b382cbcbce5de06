// Package display provides output formatting for usage snapshots.
//
// It supports multiple output formats (table, JSON, simple text)
// and renders model breakdowns, hourly histograms and the weekly
// activity trend for terminal display.
package display

import (
	"io"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays the snapshot in formatted tables.
	FormatTable Format = "table"

	// FormatJSON displays the snapshot as JSON.
	FormatJSON Format = "json"

	// FormatSimple displays the snapshot as a one-line summary.
	FormatSimple Format = "simple"
)

// Formatter formats and displays usage snapshots.
type Formatter interface {
	// FormatSnapshot formats a full usage snapshot.
	//
	// Parameters:
	//   - w: Output writer
	//   - snap: Snapshot to format
	//
	// Returns error if formatting fails.
	FormatSnapshot(w io.Writer, snap *snapshot.Snapshot) error

	// FormatRemote formats account-level usage fetched from the usage API.
	//
	// Parameters:
	//   - w: Output writer
	//   - usage: Remote usage to format
	//
	// Returns error if formatting fails.
	FormatRemote(w io.Writer, usage *webusage.Usage) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// ShowTokenCounts enables per-model token columns.
	// Default: true.
	ShowTokenCounts bool

	// Compact enables compact output (less whitespace).
	// Default: false.
	Compact bool

	// Width overrides the detected terminal width. 0 means detect,
	// falling back to 80 when stdout is not a terminal.
	Width int
}
