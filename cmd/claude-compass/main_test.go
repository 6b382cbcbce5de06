package main

import (
	"flag"
	"testing"
	"time"
)

// TestRunSnapshotCommand tests snapshot command flag parsing.
func TestRunSnapshotCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantCmd snapshotCommand
	}{
		{
			name: "default flags",
			args: []string{},
			wantCmd: snapshotCommand{
				configPath: "/test/config.yaml",
			},
		},
		{
			name: "JSON format",
			args: []string{"-format", "json"},
			wantCmd: snapshotCommand{
				format:     "json",
				configPath: "/test/config.yaml",
			},
		},
		{
			name: "compact output",
			args: []string{"-compact"},
			wantCmd: snapshotCommand{
				compact:    true,
				configPath: "/test/config.yaml",
			},
		},
		{
			name: "stored snapshot",
			args: []string{"-stored"},
			wantCmd: snapshotCommand{
				stored:     true,
				configPath: "/test/config.yaml",
			},
		},
		{
			name: "combined flags",
			args: []string{"-format", "simple", "-compact", "-stored"},
			wantCmd: snapshotCommand{
				format:     "simple",
				compact:    true,
				stored:     true,
				configPath: "/test/config.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
			format := fs.String("format", "", "output format")
			compact := fs.Bool("compact", false, "compact output")
			stored := fs.Bool("stored", false, "show stored snapshot")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := &snapshotCommand{
				format:     *format,
				compact:    *compact,
				stored:     *stored,
				configPath: "/test/config.yaml",
			}

			if got.format != tt.wantCmd.format {
				t.Errorf("format = %q, want %q", got.format, tt.wantCmd.format)
			}
			if got.compact != tt.wantCmd.compact {
				t.Errorf("compact = %v, want %v", got.compact, tt.wantCmd.compact)
			}
			if got.stored != tt.wantCmd.stored {
				t.Errorf("stored = %v, want %v", got.stored, tt.wantCmd.stored)
			}
		})
	}
}

// TestRunWatchCommand tests watch command flag parsing.
func TestRunWatchCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantCmd watchCommand
	}{
		{
			name: "default flags",
			args: []string{},
			wantCmd: watchCommand{
				clearScreen: true,
				configPath:  "/test/config.yaml",
			},
		},
		{
			name: "custom refresh interval",
			args: []string{"-refresh", "30s"},
			wantCmd: watchCommand{
				refresh:     30 * time.Second,
				clearScreen: true,
				configPath:  "/test/config.yaml",
			},
		},
		{
			name: "simple format",
			args: []string{"-format", "simple"},
			wantCmd: watchCommand{
				format:      "simple",
				clearScreen: true,
				configPath:  "/test/config.yaml",
			},
		},
		{
			name: "history mode",
			args: []string{"-history"},
			wantCmd: watchCommand{
				clearScreen: false, // history mode disables clear screen
				configPath:  "/test/config.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("watch", flag.ContinueOnError)
			refresh := fs.Duration("refresh", 0, "refresh interval override")
			format := fs.String("format", "", "output format")
			history := fs.Bool("history", false, "keep history of updates")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := &watchCommand{
				refresh:     *refresh,
				format:      *format,
				clearScreen: !*history,
				configPath:  "/test/config.yaml",
			}

			if got.refresh != tt.wantCmd.refresh {
				t.Errorf("refresh = %v, want %v", got.refresh, tt.wantCmd.refresh)
			}
			if got.format != tt.wantCmd.format {
				t.Errorf("format = %q, want %q", got.format, tt.wantCmd.format)
			}
			if got.clearScreen != tt.wantCmd.clearScreen {
				t.Errorf("clearScreen = %v, want %v", got.clearScreen, tt.wantCmd.clearScreen)
			}
		})
	}
}

// TestCommandRouting tests that commands are routed correctly.
func TestCommandRouting(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		shouldRoute bool
	}{
		{"snapshot command", "snapshot", true},
		{"watch command", "watch", true},
		{"remote command", "remote", true},
		{"config command", "config", true},
		{"help command", "help", true},
		{"unknown command", "unknown", false},
		{"invalid command", "stats", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validCommands := map[string]bool{
				"snapshot": true,
				"watch":    true,
				"remote":   true,
				"config":   true,
				"help":     true,
			}

			isValid := validCommands[tt.command]
			if isValid != tt.shouldRoute {
				t.Errorf("command %q validity = %v, want %v", tt.command, isValid, tt.shouldRoute)
			}
		})
	}
}

// TestVersionFlag tests version flag handling.
func TestVersionFlag(t *testing.T) {
	version = "v0.1.0"

	if version != "v0.1.0" {
		t.Errorf("version = %q, want %q", version, "v0.1.0")
	}

	version = "dev"
}

// TestConfigCommandStructure tests config command structure.
func TestConfigCommandStructure(t *testing.T) {
	cmd := &configCommand{
		configPath: "/test/config.yaml",
	}

	if cmd.configPath != "/test/config.yaml" {
		t.Errorf("configPath = %q, want %q", cmd.configPath, "/test/config.yaml")
	}

	if src := cmd.getConfigSource(); src != "/test/config.yaml" {
		t.Errorf("getConfigSource() = %q, want explicit path", src)
	}
}
