package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/extracto/internal/config"
	"github.com/cleared-dev/extracto/internal/export"
	"github.com/cleared-dev/extracto/internal/importer"
	"github.com/cleared-dev/extracto/internal/model"
	"github.com/cleared-dev/extracto/internal/normalize"
	"github.com/cleared-dev/extracto/internal/runlog"
)

// runner carries everything one invocation needs to turn source files
// into normalized output.
type runner struct {
	cfg        *config.Config
	log        *logrus.Logger
	runID      string
	readers    *importer.Registry
	normalizer *normalize.Normalizer
	writer     export.Writer
}

func newRunner(cfg *config.Config, log *logrus.Logger) (*runner, error) {
	amounts, err := cfg.AmountParser()
	if err != nil {
		return nil, err
	}

	runID := runlog.NewRunID()
	w, err := export.New(cfg.Output.Format, export.Options{
		SheetName: cfg.Output.SheetName,
		Headers:   cfg.Output.Headers,
		Comma:     cfg.CSVComma(),
		RunID:     runID,
	})
	if err != nil {
		return nil, err
	}

	return &runner{
		cfg:     cfg,
		log:     log,
		runID:   runID,
		readers: importer.DefaultRegistry(cfg),
		normalizer: normalize.New(
			normalize.WithRules(cfg.Rules()),
			normalize.WithAmountParser(amounts),
			normalize.WithLogger(log),
		),
		writer: w,
	}, nil
}

// outputPath is where src's normalized file goes when dir is empty, and
// the same name inside dir otherwise.
func (r *runner) outputPath(src, dir string) string {
	if dir != "" {
		src = filepath.Join(dir, filepath.Base(src))
	}
	return export.OutputPath(src, r.cfg.Output.Suffix, r.writer.Ext())
}

// process reads, normalizes and writes one file.
func (r *runner) process(src, out string) (*model.Table, error) {
	if same, err := samePath(src, out); err != nil {
		return nil, err
	} else if same {
		return nil, fmt.Errorf("output %s would overwrite the input", out)
	}

	rd, err := r.readers.ForPath(src)
	if err != nil {
		return nil, err
	}
	grid, err := rd.Read(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}

	table, err := r.normalizer.Normalize(grid)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", src, err)
	}

	if err := r.writer.Write(out, table); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	return table, nil
}

// entry builds the run log row for one processed file.
func (r *runner) entry(src, out string, table *model.Table, err error) runlog.Entry {
	e := runlog.Entry{
		Timestamp: time.Now().UTC(),
		RunID:     r.runID,
		Source:    src,
		Status:    runlog.StatusOK,
	}
	if err != nil {
		e.Status = runlog.StatusFailed
		e.Error = err.Error()
		return e
	}
	e.Output = out
	e.Records = table.Len()
	e.Warnings = len(table.Warnings)
	return e
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	return absA == absB, nil
}
