// Package main provides the claude-compass CLI application.
//
// Claude Compass derives local usage snapshots from the Claude Code stats
// cache: daily and weekly activity, per-model token breakdowns, pacing
// against the weekly reset, and desktop alerts when usage runs hot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	// Parse command.
	flag.Parse()

	// Handle version flag.
	if *showVersion {
		fmt.Printf("claude-compass %s\n", version)
		return nil
	}

	// Get command.
	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "snapshot":
		return runSnapshotCommand(*configPath, args[1:])
	case "watch":
		return runWatchCommand(*configPath, args[1:])
	case "remote":
		return runRemoteCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runSnapshotCommand runs the snapshot command.
func runSnapshotCommand(configPath string, args []string) error {
	// Define snapshot-specific flags.
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")
	stored := fs.Bool("stored", false, "show the last stored snapshot instead of rebuilding")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &snapshotCommand{
		format:     *format,
		compact:    *compact,
		stored:     *stored,
		configPath: configPath,
	}

	return cmd.Execute()
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath string, args []string) error {
	// Define watch-specific flags.
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	refresh := fs.Duration("refresh", 0, "refresh interval override (e.g., 30s, 2m)")
	format := fs.String("format", "", "output format (table, simple)")
	history := fs.Bool("history", false, "keep history of updates (append mode)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &watchCommand{
		refresh:     *refresh,
		format:      *format,
		clearScreen: !*history, // clear screen unless history mode
		configPath:  configPath,
	}

	return cmd.Execute()
}

// runRemoteCommand runs the remote command.
func runRemoteCommand(configPath string, args []string) error {
	// Define remote-specific flags.
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")
	save := fs.Bool("save", false, "persist the fetched usage to the local store")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &remoteCommand{
		format:     *format,
		save:       *save,
		timeout:    *timeout,
		configPath: configPath,
	}

	return cmd.Execute()
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `Claude Compass - local usage analytics for the Claude Code stats cache

Usage:
  claude-compass [flags] <command> [command flags]

Commands:
  snapshot    Build and display a usage snapshot
  watch       Live monitoring with periodic refresh and usage alerts
  remote      Fetch account-level usage from the usage API
  config      Configuration management (show, path, reset)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Snapshot Command Flags:
  -format     Output format (table, json, simple)
  -compact    Compact output
  -stored     Show the last stored snapshot instead of rebuilding

Watch Command Flags:
  -refresh    Refresh interval override (e.g., 30s, 2m)
  -format     Output format (table, simple)
  -history    Keep history of updates (append mode, default: false)

Remote Command Flags:
  -format     Output format (table, json, simple)
  -save       Persist the fetched usage to the local store
  -timeout    Request timeout (default: 15s)

Examples:
  # Build and show the current snapshot
  claude-compass snapshot

  # Snapshot as JSON
  claude-compass snapshot -format json

  # Show the last stored snapshot without reading the stats cache
  claude-compass snapshot -stored

  # Live monitoring with alerts
  claude-compass watch

  # Live monitoring with a faster refresh
  claude-compass watch -refresh 30s

  # Live monitoring in simple format with history
  claude-compass watch -format simple -history

  # Fetch remote account usage
  claude-compass remote

  # Configuration management
  claude-compass config show
  claude-compass config path
  claude-compass config reset

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
