package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dfbb/qrsnap/internal/config"
	"github.com/dfbb/qrsnap/internal/history"
	"github.com/dfbb/qrsnap/internal/scan"
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Decode data from a QR Code image",
	Long:  `Decode the image data in FILE assuming it is a QR Code.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var flagDecAggressive bool

func init() {
	decodeCmd.Flags().BoolVarP(&flagDecAggressive, "aggressive", "a", false, "try a little harder to decode an image")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		cfg = config.Defaults()
	}
	aggressive := flagDecAggressive || cfg.Aggressive

	file := args[0]
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to load image %s: %w", file, err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to load image %s: %w", file, err)
	}

	res := scan.Decode(scan.FromImage(img), aggressive)
	res.Write(os.Stdout)
	recordHistory(cfg, file, res)

	if res.Err != nil {
		// Diagnostics already written; cobra's own error and usage output
		// is silenced, and Execute reports the error on stderr and exits
		// non-zero.
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return res.Err
	}
	return nil
}

// recordHistory appends the decode outcome to the scan history database.
// History failures only warn: they must not mask the decode result.
func recordHistory(cfg *config.Config, file string, res *scan.Result) {
	dbPath := cfg.HistoryDB
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			slog.Warn("history disabled", "err", err)
			return
		}
		dbPath = filepath.Join(dir, "scan_history.db")
	}
	h, err := history.New(dbPath)
	if err != nil {
		slog.Warn("history disabled", "err", err)
		return
	}
	defer h.Close()
	e := history.Entry{
		File:  file,
		OK:    res.Err == nil,
		Grade: res.Grade(),
		Bytes: len(res.Data),
	}
	if res.Err != nil {
		e.Err = res.Err.Error()
	}
	if res.HasSymbol {
		e.Version = res.Version
		e.EC = res.EC.String()
	}
	if res.HasMode {
		e.Mode = res.Mode.String()
	}
	if err := h.Record(e); err != nil {
		slog.Warn("history record failed", "err", err)
	}
}
