// Package dataloader reads the per-attempt tables written by the profiler:
// one reference and one solution geometry table plus one signal matrix per
// page-table level.
package dataloader

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mmugram/internal/geometry"
	"mmugram/internal/logging"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrMalformed     = errors.New("malformed table")
	ErrLevelMismatch = errors.New("reference and solution tables disagree on the number of levels")
)

// Level is everything needed to draw one page.
type Level struct {
	Index     int
	Signal    *mat.Dense
	Reference geometry.Triple
	Solution  geometry.Triple
}

type Attempt struct {
	ID     int
	Dir    string
	Levels []Level
}

func ReferencePath(dir string, attempt int) string {
	return filepath.Join(dir, fmt.Sprintf("%d-reference.csv", attempt))
}

func SolutionsPath(dir string, attempt int) string {
	return filepath.Join(dir, fmt.Sprintf("%d-solutions.csv", attempt))
}

func LevelPath(dir string, attempt, level int) string {
	return filepath.Join(dir, fmt.Sprintf("%d-level%d.csv", attempt, level))
}

// Load reads every table of an attempt up front. Level i (1-based) pairs row
// i-1 of both geometry tables with {attempt}-level{i}.csv.
func Load(dir string, attempt int) (*Attempt, error) {
	logger := logging.GetLogger()

	reference, err := LoadTriples(ReferencePath(dir, attempt))
	if err != nil {
		return nil, fmt.Errorf("failed to load reference geometry: %w", err)
	}
	solutions, err := LoadTriples(SolutionsPath(dir, attempt))
	if err != nil {
		return nil, fmt.Errorf("failed to load solution geometry: %w", err)
	}
	if len(reference) != len(solutions) {
		return nil, fmt.Errorf("%w: %d reference rows, %d solution rows", ErrLevelMismatch, len(reference), len(solutions))
	}

	result := &Attempt{
		ID:     attempt,
		Dir:    dir,
		Levels: make([]Level, 0, len(reference)),
	}
	for i := range reference {
		path := LevelPath(dir, attempt, i+1)
		signal, err := LoadMatrix(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load level %d signal: %w", i+1, err)
		}
		rows, cols := signal.Dims()
		logger.WithFields(logrus.Fields{
			"pt_level": i + 1,
			"file":     path,
			"rows":     rows,
			"cols":     cols,
		}).Debug("Loaded level signal")

		result.Levels = append(result.Levels, Level{
			Index:     i + 1,
			Signal:    signal,
			Reference: reference[i],
			Solution:  solutions[i],
		})
	}

	logger.WithFields(logrus.Fields{
		"attempt": attempt,
		"levels":  len(result.Levels),
		"input":   dir,
	}).Info("Loaded attempt tables")
	return result, nil
}

// LoadTriples parses a table with three non-negative integers per line.
func LoadTriples(path string) ([]geometry.Triple, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	triples := make([]geometry.Triple, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) != 3 {
			return nil, fmt.Errorf("%w: %s:%d: expected 3 columns, got %d", ErrMalformed, path, rec.line, len(rec.fields))
		}
		var v [3]int
		for i, field := range rec.fields {
			n, err := parseInt(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", ErrMalformed, path, rec.line, err)
			}
			v[i] = n
		}
		triples = append(triples, geometry.Triple{PagesPerLine: v[0], Line: v[1], Page: v[2]})
	}
	return triples, nil
}

// LoadMatrix parses a rectangular table of non-negative reals.
func LoadMatrix(path string) (*mat.Dense, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, geometry.ErrEmptyGrid)
	}

	cols := len(records[0].fields)
	data := make([]float64, 0, len(records)*cols)
	for _, rec := range records {
		if len(rec.fields) != cols {
			return nil, fmt.Errorf("%w: %s:%d: expected %d columns, got %d", ErrMalformed, path, rec.line, cols, len(rec.fields))
		}
		for _, field := range rec.fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", ErrMalformed, path, rec.line, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("%w: %s:%d: value %q is not a non-negative real", ErrMalformed, path, rec.line, field)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records), cols, data), nil
}

type record struct {
	line   int
	fields []string
}

// readRecords splits a file into non-empty lines of fields separated by
// whitespace and/or commas.
func readRecords(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		if len(fields) == 0 {
			continue
		}
		records = append(records, record{line: lineNo, fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// parseInt accepts integral values written either as integers or as floats
// such as "4.0" or "4e0".
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("value %q is negative", s)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", s)
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("value %q is not a non-negative integer", s)
	}
	return int(f), nil
}
