package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"picbox/internal/store"
)

func TestPictureTableRow(t *testing.T) {
	episode := int64(4)
	category := int64(7)
	pic := store.Picture{
		ID:               12,
		CategoryID:       &category,
		OriginalFilename: "holiday.jpg",
		Filename:         "abc123.jpg",
		Episode:          &episode,
		Keywords: []store.Keyword{
			{Name: "beach"},
			{Name: "sunset"},
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	row := pictureTableRow(pic)
	if row[0] != "12" {
		t.Fatalf("id column = %q", row[0])
	}
	if row[1] != "holiday.jpg" {
		t.Fatalf("name column = %q, want the display name", row[1])
	}
	if row[2] != "7" || row[3] != "4" {
		t.Fatalf("category/episode = %q/%q", row[2], row[3])
	}
	if row[4] != "beach, sunset" {
		t.Fatalf("keywords column = %q", row[4])
	}
}

func TestPictureTableRowDefaults(t *testing.T) {
	row := pictureTableRow(store.Picture{ID: 3, Filename: "xyz.png"})
	if row[1] != "xyz.png" {
		t.Fatalf("name column = %q, want stored filename fallback", row[1])
	}
	if row[2] != "-" || row[3] != "-" || row[4] != "-" {
		t.Fatalf("empty fields should render as dashes, got %v", row)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf,
		[]string{"A", "B"},
		[][]string{{"only"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("render output missing cell: %q", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header and row lines, got %q", out)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("parseID = %d, %v", id, err)
	}
	if _, err := parseID("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
