// Package report compares the recovered geometry of each level with the
// reference one, the way the profiler prints it after an attack run.
package report

import (
	"fmt"
	"os"

	"mmugram/internal/dataloader"
	"mmugram/internal/geometry"
	"mmugram/internal/signal"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type LevelSummary struct {
	Level          int             `yaml:"level"`
	Rows           int             `yaml:"rows"`
	Cols           int             `yaml:"cols"`
	Reference      geometry.Triple `yaml:"reference"`
	Solution       geometry.Triple `yaml:"solution"`
	ReferenceSlot  int             `yaml:"reference_slot"`
	SolutionSlot   int             `yaml:"solution_slot"`
	Match          bool            `yaml:"match"`
	SlotDistance   int             `yaml:"slot_distance"`
	ReferenceScore float64         `yaml:"reference_score"`
	SolutionScore  float64         `yaml:"solution_score"`
	Resolved       geometry.Triple `yaml:"resolved"`
	ResolvedScore  float64         `yaml:"resolved_score"`
}

type Summary struct {
	Attempt    int            `yaml:"attempt"`
	Input      string         `yaml:"input"`
	Title      string         `yaml:"title,omitempty"`
	SlotErrors int            `yaml:"slot_errors"`
	Levels     []LevelSummary `yaml:"levels"`
}

// Build scores both geometries of every level over its normalised signal and
// re-solves the level with the solution's period.
func Build(attempt *dataloader.Attempt) (*Summary, error) {
	summary := &Summary{
		Attempt: attempt.ID,
		Input:   attempt.Dir,
		Levels:  make([]LevelSummary, 0, len(attempt.Levels)),
	}

	for _, level := range attempt.Levels {
		normalized := signal.Normalize(level.Signal)
		rows, cols := normalized.Dims()

		refScore, err := geometry.Score(normalized, level.Reference)
		if err != nil {
			return nil, fmt.Errorf("level %d reference: %w", level.Index, err)
		}
		solScore, err := geometry.Score(normalized, level.Solution)
		if err != nil {
			return nil, fmt.Errorf("level %d solution: %w", level.Index, err)
		}
		resolved, resolvedScore, err := geometry.Solve(normalized, level.Solution.PagesPerLine)
		if err != nil {
			return nil, fmt.Errorf("level %d solve: %w", level.Index, err)
		}

		ls := LevelSummary{
			Level:          level.Index,
			Rows:           rows,
			Cols:           cols,
			Reference:      level.Reference,
			Solution:       level.Solution,
			ReferenceSlot:  level.Reference.Slot(),
			SolutionSlot:   level.Solution.Slot(),
			SlotDistance:   geometry.SlotDistance(level.Reference, level.Solution),
			ReferenceScore: refScore,
			SolutionScore:  solScore,
			Resolved:       resolved,
			ResolvedScore:  resolvedScore,
		}
		ls.Match = ls.SlotDistance == 0
		if !ls.Match {
			summary.SlotErrors++
		}
		summary.Levels = append(summary.Levels, ls)
	}
	return summary, nil
}

func Write(path string, summary *Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func Log(logger *logrus.Logger, summary *Summary) {
	for _, l := range summary.Levels {
		status := "OK"
		if !l.Match {
			status = "!!"
		}
		logger.WithFields(logrus.Fields{
			"pt_level":  l.Level,
			"best_line": l.Solution.Line,
			"best_page": l.Solution.Page,
			"slot":      l.SolutionSlot,
			"expected":  l.ReferenceSlot,
			"status":    status,
		}).Info("Level geometry")
	}
	logger.WithFields(logrus.Fields{
		"attempt":     summary.Attempt,
		"levels":      len(summary.Levels),
		"slot_errors": summary.SlotErrors,
	}).Info("Geometry summary")
}
