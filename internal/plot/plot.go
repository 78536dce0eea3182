package plot

import (
	"fmt"

	"mmugram/internal/config"
	"mmugram/internal/dataloader"
	"mmugram/internal/geometry"
	"mmugram/internal/logging"
	"mmugram/internal/plot/document"
	"mmugram/internal/plot/mmugram"
	"mmugram/internal/signal"

	"github.com/sirupsen/logrus"
)

type PlotOptions struct {
	InputDir string
	Attempt  int
	Output   string
	CPUName  string
}

type PlotResult struct {
	Attempt *dataloader.Attempt
	Title   string
	Pages   int
}

type PlotManager struct {
	config    *config.RenderConfig
	assembler *mmugram.PageAssembler
	logger    *logrus.Logger
}

func NewPlotManager(cfg *config.RenderConfig) (*PlotManager, error) {
	logger := logging.GetLogger()

	assembler, err := mmugram.NewPageAssembler(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create page assembler: %w", err)
	}

	return &PlotManager{
		config:    cfg,
		assembler: assembler,
		logger:    logger,
	}, nil
}

// GenerateMMUgram loads an attempt and writes one page per level to
// opts.Output. Every table is read before the document is opened, and the
// document only reaches disk once all levels rendered.
func (pm *PlotManager) GenerateMMUgram(opts PlotOptions) (*PlotResult, error) {
	attempt, err := dataloader.Load(opts.InputDir, opts.Attempt)
	if err != nil {
		return nil, err
	}
	if len(attempt.Levels) == 0 {
		return nil, fmt.Errorf("attempt %d in %s has no levels", opts.Attempt, opts.InputDir)
	}

	title := pm.config.DocumentTitle(opts.CPUName)
	pm.logger.WithFields(logrus.Fields{
		"attempt": opts.Attempt,
		"levels":  len(attempt.Levels),
		"output":  opts.Output,
		"title":   title,
	}).Info("Generating MMUgram")

	doc := document.New(opts.Output, title, pm.config.Page.Width, pm.config.Page.Height)
	defer doc.Close()

	for _, level := range attempt.Levels {
		page, err := PreparePage(level)
		if err != nil {
			return nil, err
		}

		image, err := pm.assembler.Render(page)
		if err != nil {
			return nil, fmt.Errorf("failed to render level %d: %w", level.Index, err)
		}
		if err := doc.AddPage(image); err != nil {
			return nil, err
		}
	}

	if err := doc.Commit(); err != nil {
		return nil, err
	}

	pm.logger.WithFields(logrus.Fields{
		"output": opts.Output,
		"pages":  doc.PageCount(),
	}).Info("MMUgram written")

	return &PlotResult{
		Attempt: attempt,
		Title:   title,
		Pages:   doc.PageCount(),
	}, nil
}

// PreparePage normalises the level's signal and projects both geometries
// onto it.
func PreparePage(level dataloader.Level) (mmugram.Page, error) {
	normalized := signal.Normalize(level.Signal)
	rows, cols := normalized.Dims()

	reference, err := geometry.Project(level.Reference, rows, cols, geometry.Reference)
	if err != nil {
		return mmugram.Page{}, fmt.Errorf("level %d reference geometry %v: %w", level.Index, level.Reference, err)
	}
	solution, err := geometry.Project(level.Solution, rows, cols, geometry.Solution)
	if err != nil {
		return mmugram.Page{}, fmt.Errorf("level %d solution geometry %v: %w", level.Index, level.Solution, err)
	}

	return mmugram.Page{
		Level:     level.Index,
		Signal:    normalized,
		Reference: reference,
		Solution:  solution,
	}, nil
}
