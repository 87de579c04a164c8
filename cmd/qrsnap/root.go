package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qrsnap",
	Short: "QR Code encoder and decoder",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagDebug)
	},
}

// logLevel backs slog's default handler; -d/--debug raises it per
// occurrence.
var logLevel slog.LevelVar

var flagDebug int

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagDebug, "debug", "d", "increase debug level (repeatable)")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the default slog handler on stderr. Diagnostics
// must not mix with the matrix written to stdout.
func setupLogging(debug int) {
	switch {
	case debug <= 0:
		logLevel.Set(slog.LevelWarn)
	case debug == 1:
		logLevel.Set(slog.LevelInfo)
	default:
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})))
}

// configPath returns the config file location, ~/.qrsnap/config.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "qrsnap.yaml"
	}
	return filepath.Join(home, ".qrsnap", "config.yaml")
}

// dataDir returns (and creates) the per-user data directory.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	dir := filepath.Join(home, ".qrsnap")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return dir, nil
}
