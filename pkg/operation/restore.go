package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Restore copies every backed-up file matching the pattern back over its
// original in the materials directory. It returns the number of files
// restored. A missing or empty backup directory is not an error.
func (o *Operator) Restore(ctx context.Context) (int, error) {
	names, err := o.files.ListBackups(ctx, o.cfg.Pattern)
	if err != nil {
		return 0, errors.Errorf("listing backups: %w", err)
	}
	if len(names) == 0 {
		o.console.Warningf("No backups found in %s", o.files.BackupDir())
		return 0, nil
	}

	for _, name := range names {
		if err := o.files.Restore(ctx, name); err != nil {
			return 0, errors.Errorf("restoring %s: %w", name, err)
		}
		o.console.FileRestored(name)
	}

	zerolog.Ctx(ctx).Debug().Int("files", len(names)).Msg("restore finished")
	o.console.Infof("Restored %d files from %s", len(names), o.files.BackupDir())
	return len(names), nil
}
