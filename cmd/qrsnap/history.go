package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dfbb/qrsnap/internal/config"
	"github.com/dfbb/qrsnap/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent decode attempts",
	RunE:  runHistory,
}

var flagHistLimit int

func init() {
	historyCmd.Flags().IntVarP(&flagHistLimit, "limit", "n", 20, "number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		cfg = config.Defaults()
	}
	dbPath := cfg.HistoryDB
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, "scan_history.db")
	}
	h, err := history.New(dbPath)
	if err != nil {
		return err
	}
	defer h.Close()

	entries, err := h.List(flagHistLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no decode attempts recorded")
		return nil
	}
	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed: " + e.Err
		}
		fmt.Printf("%s  %-30s v%-2d %-2s %-12s grade=%.2f bytes=%d  %s\n",
			e.TS, filepath.Base(e.File), e.Version, e.EC, e.Mode, e.Grade, e.Bytes, status)
	}
	return nil
}
