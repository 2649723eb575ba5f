package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogbookWritesFileAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "questify.log")
	book, err := New(path, "development")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer book.Close()

	book.Info("visitor %s logged in", "bezoeker@example.com")
	book.Warn("slow request")

	tail := book.Tail(10)
	if len(tail) != 2 {
		t.Fatalf("tail = %d lines, want 2", len(tail))
	}
	if !strings.Contains(tail[0], "bezoeker@example.com") {
		t.Fatalf("tail[0] = %q", tail[0])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"level":"warn"`) {
		t.Fatalf("log file missing structured warn entry: %s", data)
	}
}

func TestTailReturnsMostRecentOldestFirst(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "questify.log"), "development")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer book.Close()

	for i := 1; i <= 100; i++ {
		book.Info("entry %d", i)
	}

	tail := book.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("tail = %d lines, want 3", len(tail))
	}
	for i, want := range []int{98, 99, 100} {
		if !strings.Contains(tail[i], fmt.Sprintf("entry %d", want)) {
			t.Fatalf("tail[%d] = %q, want entry %d", i, tail[i], want)
		}
	}
}

func TestProductionFiltersDebug(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "questify.log"), "production")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer book.Close()

	logger := book.Logger()
	logger.Debug().Msg("chatty")
	book.Info("kept")

	tail := book.Tail(10)
	if len(tail) != 1 || !strings.Contains(tail[0], "kept") {
		t.Fatalf("tail = %v, want only the info entry", tail)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("into the void")
	if got := book.Tail(5); got != nil {
		t.Fatalf("Tail on nil = %v", got)
	}
	if err := book.Close(); err != nil {
		t.Fatalf("Close on nil = %v", err)
	}
}
