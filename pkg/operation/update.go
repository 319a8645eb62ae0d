package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/CuriousMike56/pssm-updater/pkg/material"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Update rewrites every eligible material in the directory, backing up each
// touched file first. Files without eligible materials are left untouched.
func (o *Operator) Update(ctx context.Context) (*Report, error) {
	return o.run(ctx, false)
}

// Check performs the same classification as Update but writes nothing; the
// report says what an update run would do. Useful before re-running on a
// directory that may already have been migrated, since a second update can
// double-suffix keywords.
func (o *Operator) Check(ctx context.Context) (*Report, error) {
	return o.run(ctx, true)
}

func (o *Operator) run(ctx context.Context, dryRun bool) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	o.console.Infof("Scanning folder: %s", o.files.Dir())
	if !dryRun {
		o.console.Infof("Backup folder: %s", o.files.BackupDir())
	}

	names, err := o.files.List(ctx, o.cfg.Pattern)
	if err != nil {
		return nil, errors.Errorf("listing material files: %w", err)
	}
	if len(names) == 0 {
		o.console.Warningf("No %s files found!", strings.TrimPrefix(o.cfg.Pattern, "*"))
		return &Report{}, nil
	}

	report := &Report{}
	for _, name := range names {
		if err := o.processFile(ctx, name, dryRun, report); err != nil {
			return nil, errors.Errorf("processing %s: %w", name, err)
		}
	}

	o.console.Summary(report.FilesUpdated, report.MaterialsFound, report.MaterialsUpdated)
	logger.Debug().
		Int("files", len(names)).
		Int("files_updated", report.FilesUpdated).
		Bool("dry_run", dryRun).
		Msg("directory run finished")
	return report, nil
}

// processFile reads one file, rewrites its eligible blocks and, unless this
// is a dry run, backs up and overwrites the file when anything changed.
func (o *Operator) processFile(ctx context.Context, name string, dryRun bool, report *Report) error {
	o.console.Processing(name)

	content, err := o.files.Read(ctx, name)
	if err != nil {
		return err
	}

	blocks := material.Split(string(content))
	out := make([]string, 0, len(blocks))
	updated := 0
	for _, b := range blocks {
		report.MaterialsFound++
		if !o.rewriter.Eligible(b) {
			out = append(out, b.Text)
			continue
		}
		tb, err := o.rewriter.Transform(b)
		if err != nil {
			return errors.Errorf("transforming material %q: %w", b.Name(), err)
		}
		out = append(out, tb.Text)
		updated++
		report.MaterialsUpdated++
	}

	if updated == 0 {
		o.console.FileSkipped(name)
		return nil
	}

	if dryRun {
		o.console.FileWouldUpdate(name, updated)
		report.FilesUpdated++
		return nil
	}

	// Backup must complete before the overwrite; it is the only recovery
	// path if the write is interrupted.
	if err := o.files.Backup(ctx, name); err != nil {
		return err
	}

	rendered := o.cfg.ImportLine + "\n\n" + strings.Join(out, "\n\n")
	if err := o.files.Write(ctx, name, []byte(rendered)); err != nil {
		return err
	}

	report.FilesUpdated++
	o.console.FileUpdated(name, updated, filepath.Join(o.files.BackupDir(), name))
	return nil
}
