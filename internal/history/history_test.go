package history_test

import (
	"path/filepath"
	"testing"

	"github.com/dfbb/qrsnap/internal/history"
)

func TestRecordAndList(t *testing.T) {
	h, err := history.New(filepath.Join(t.TempDir(), "scan.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer h.Close()

	err = h.Record(history.Entry{
		File: "a.png", OK: true, Grade: 4, Bytes: 11, Version: 1, Mode: "EightBit", EC: "M",
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	err = h.Record(history.Entry{
		File: "b.png", OK: false, Err: "unable to decode image",
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := h.List(10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	// Newest first
	if entries[0].File != "b.png" || entries[0].OK {
		t.Errorf("entries[0] = %+v, want failed b.png", entries[0])
	}
	if entries[1].File != "a.png" || !entries[1].OK || entries[1].Grade != 4 {
		t.Errorf("entries[1] = %+v, want ok a.png grade 4", entries[1])
	}
}

func TestListLimit(t *testing.T) {
	h, err := history.New(filepath.Join(t.TempDir(), "scan.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer h.Close()

	for i := 0; i < 5; i++ {
		if err := h.Record(history.Entry{File: "x.png", OK: true}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := h.List(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("List(3) returned %d entries", len(entries))
	}
}
