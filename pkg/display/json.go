package display

import (
	"encoding/json"
	"io"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

// FormatSnapshot implements Formatter.FormatSnapshot.
func (f *jsonFormatter) FormatSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(snap)
}

// FormatRemote implements Formatter.FormatRemote.
func (f *jsonFormatter) FormatRemote(w io.Writer, usage *webusage.Usage) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(usage)
}
