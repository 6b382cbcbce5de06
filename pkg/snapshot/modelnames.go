package snapshot

import "strings"

// friendlyNames maps model-identifier substrings to display names.
// Order matters: more specific substrings come first.
var friendlyNames = []struct {
	substr string
	name   string
}{
	{"opus-4-6", "Opus 4.6"},
	{"opus-4-5", "Opus 4.5"},
	{"sonnet-4-5", "Sonnet 4.5"},
	{"sonnet-4", "Sonnet 4"},
	{"haiku-4-5", "Haiku 4.5"},
	{"haiku", "Haiku"},
}

// FriendlyModelName returns a short display name for a model identifier,
// or the identifier itself when the family is not recognized.
func FriendlyModelName(id string) string {
	for _, f := range friendlyNames {
		if strings.Contains(id, f.substr) {
			return f.name
		}
	}
	return id
}
