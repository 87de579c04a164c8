package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dfbb/qrsnap/internal/config"
	"github.com/dfbb/qrsnap/internal/qr"
	"github.com/dfbb/qrsnap/internal/render"
)

var encodeCmd = &cobra.Command{
	Use:   "encode DATA",
	Short: "Encode data into a QR Code",
	Long: `Encode DATA into a QR Code.

By default the QR Code is written as text to stdout ('@' dark, '.' light).
With --ansi the output uses ANSI escape codes. With --file the QR Code is
written as a greyscale PNG to the given path.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

var (
	flagEncVersion int
	flagEncMode    string
	flagEncEC      string
	flagEncANSI    bool
	flagEncPPM     int
	flagEncFile    string
)

func init() {
	encodeCmd.Flags().IntVarP(&flagEncVersion, "version", "v", 0, "QR Code version 1..40 (default: smallest that fits)")
	encodeCmd.Flags().StringVarP(&flagEncMode, "mode", "m", "", "encoding mode: 8, A, or N")
	encodeCmd.Flags().StringVarP(&flagEncEC, "error-correction-level", "e", "", "error correction level: L, M, Q, or H")
	encodeCmd.Flags().BoolVarP(&flagEncANSI, "ansi", "a", false, "output ANSI control codes")
	encodeCmd.Flags().IntVarP(&flagEncPPM, "pixels-per-module", "p", 0, "image pixels per module 1..16 (requires --file)")
	encodeCmd.Flags().StringVarP(&flagEncFile, "file", "f", "", "file path to write the QR Code image to")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		cfg = config.Defaults()
	}

	data := []byte(args[0])

	mode, err := parseMode(firstNonEmpty(flagEncMode, cfg.Mode))
	if err != nil {
		return err
	}
	ec, err := parseECLevel(firstNonEmpty(flagEncEC, cfg.ECLevel))
	if err != nil {
		return err
	}

	version := flagEncVersion
	if version == 0 {
		v, ok := qr.VersionFromLength(len(data), mode, ec)
		if !ok {
			return fmt.Errorf("data too long for mode %s at level %s", mode, ec)
		}
		version = v
	}
	if version < qr.VersionMin || version > qr.VersionMax {
		return fmt.Errorf("invalid version %d: possible values 1-40", version)
	}

	ppm := flagEncPPM
	if ppm == 0 {
		ppm = cfg.PixelsPerModule
	}
	if ppm < 1 || ppm > 16 {
		return fmt.Errorf("invalid pixels-per-module %d: possible values 1-16", ppm)
	}
	if flagEncPPM != 0 && flagEncFile == "" {
		return fmt.Errorf("--pixels-per-module requires --file")
	}
	if flagEncANSI && flagEncFile != "" {
		return fmt.Errorf("--ansi conflicts with --file")
	}

	matrix, err := qr.Encode(data, version, mode, ec)
	if err != nil {
		return err
	}

	if flagEncFile != "" {
		f, err := os.Create(flagEncFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return render.PNG(f, matrix, ppm)
	}
	if flagEncANSI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--ansi requires stdout to be a terminal")
		}
		return render.ANSI(os.Stdout, matrix)
	}
	return render.Text(os.Stdout, matrix)
}

func parseMode(s string) (qr.Mode, error) {
	switch strings.ToUpper(s) {
	case "", "8":
		return qr.EightBit, nil
	case "A":
		return qr.AlphaNumeric, nil
	case "N":
		return qr.Numeric, nil
	}
	return 0, fmt.Errorf("unknown mode %q: possible values 8, A, N", s)
}

func parseECLevel(s string) (qr.ECLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qr.ECL, nil
	case "", "M":
		return qr.ECM, nil
	case "Q":
		return qr.ECQ, nil
	case "H":
		return qr.ECH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q: possible values L, M, Q, H", s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
