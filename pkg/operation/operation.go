// Package operation implements the updater's top-level runs over a single
// materials directory: update (rewrite in place), check (dry run) and
// restore (copy backups back over the originals).
package operation

import (
	"github.com/CuriousMike56/pssm-updater/pkg/config"
	"github.com/CuriousMike56/pssm-updater/pkg/fileset"
	"github.com/CuriousMike56/pssm-updater/pkg/log"
	"github.com/CuriousMike56/pssm-updater/pkg/material"
	"gitlab.com/tozd/go/errors"
)

// Options contains the dependencies of an Operator.
type Options struct {
	// Config is the rule set for the run.
	Config *config.Config
	// Files performs the filesystem operations.
	Files *fileset.Manager
	// Console receives the human-readable progress report.
	Console *log.Console
}

// Operator runs updates over one materials directory. Processing is
// strictly sequential: one file is read, rewritten and written back before
// the next starts, and the first error aborts the whole run.
type Operator struct {
	cfg      *config.Config
	files    *fileset.Manager
	console  *log.Console
	rewriter *material.Rewriter
}

// New creates an Operator with the given options.
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return &Operator{
		cfg:      opts.Config,
		files:    opts.Files,
		console:  opts.Console,
		rewriter: material.NewRewriter(opts.Config.RewriteOptions()),
	}, nil
}

// Report holds the run counters. They are updated only by the single
// control-flow goroutine.
type Report struct {
	// FilesUpdated counts files actually rewritten (or, in a dry run, files
	// that would be).
	FilesUpdated int
	// MaterialsFound counts every material block encountered, eligible or
	// not.
	MaterialsFound int
	// MaterialsUpdated counts blocks rewritten onto the base material.
	MaterialsUpdated int
}
