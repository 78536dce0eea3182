package dataloader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"mmugram/internal/geometry"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_Attempt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "3-reference.csv", "8 3 1\n8 10 5\n")
	writeFile(t, dir, "3-solutions.csv", "8 3 1\n8 9 5\n")
	writeFile(t, dir, "3-level1.csv", "1 2 3 \n4 5 6 \n")
	writeFile(t, dir, "3-level2.csv", "7,8\n9,10\n11,12\n")

	a, err := Load(dir, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != 3 || len(a.Levels) != 2 {
		t.Fatalf("unexpected attempt %+v", a)
	}

	l1 := a.Levels[0]
	if l1.Index != 1 || l1.Reference != (geometry.Triple{PagesPerLine: 8, Line: 3, Page: 1}) {
		t.Fatalf("unexpected level 1: %+v", l1)
	}
	if r, c := l1.Signal.Dims(); r != 2 || c != 3 {
		t.Fatalf("level 1: expected 2x3, got %dx%d", r, c)
	}
	if l1.Signal.At(1, 2) != 6 {
		t.Fatalf("level 1: expected 6 at (1,2), got %v", l1.Signal.At(1, 2))
	}

	l2 := a.Levels[1]
	if l2.Solution != (geometry.Triple{PagesPerLine: 8, Line: 9, Page: 5}) {
		t.Fatalf("unexpected level 2 solution: %v", l2.Solution)
	}
	if r, c := l2.Signal.Dims(); r != 3 || c != 2 {
		t.Fatalf("level 2: expected 3x2, got %dx%d", r, c)
	}
}

func TestLoad_MissingReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "5-solutions.csv", "8 0 0\n")

	_, err := Load(dir, 5)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_MissingLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0-reference.csv", "8 0 0\n8 0 0\n")
	writeFile(t, dir, "0-solutions.csv", "8 0 0\n8 0 0\n")
	writeFile(t, dir, "0-level1.csv", "1 2\n")

	_, err := Load(dir, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_LevelMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0-reference.csv", "8 0 0\n8 1 1\n")
	writeFile(t, dir, "0-solutions.csv", "8 0 0\n")

	_, err := Load(dir, 0)
	if !errors.Is(err, ErrLevelMismatch) {
		t.Fatalf("expected ErrLevelMismatch, got %v", err)
	}
}

func TestLoadTriples(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []geometry.Triple
		wantErr error
	}{
		{"whitespace", "8 3 1\n\n4 0 2\n", []geometry.Triple{{PagesPerLine: 8, Line: 3, Page: 1}, {PagesPerLine: 4, Line: 0, Page: 2}}, nil},
		{"comma", "8,3,1\n", []geometry.Triple{{PagesPerLine: 8, Line: 3, Page: 1}}, nil},
		{"float notation", "8.000000000000000000e+00 3.0 1\n", []geometry.Triple{{PagesPerLine: 8, Line: 3, Page: 1}}, nil},
		{"empty", "", []geometry.Triple{}, nil},
		{"two columns", "8 3\n", nil, ErrMalformed},
		{"fraction", "8 3.5 1\n", nil, ErrMalformed},
		{"negative", "8 -1 1\n", nil, ErrMalformed},
		{"text", "8 x 1\n", nil, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "t.csv", tt.content)

			got, err := LoadTriples(filepath.Join(dir, "t.csv"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("row %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestLoadMatrix_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty", "\n\n", geometry.ErrEmptyGrid},
		{"ragged", "1 2 3\n4 5\n", ErrMalformed},
		{"negative", "1 -2\n", ErrMalformed},
		{"nan", "1 NaN\n", ErrMalformed},
		{"text", "1 two\n", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "m.csv", tt.content)

			_, err := LoadMatrix(filepath.Join(dir, "m.csv"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
