package main

import (
	"context"
	"os"

	"github.com/CuriousMike56/pssm-updater/pkg/config"
	"github.com/CuriousMike56/pssm-updater/pkg/fileset"
	"github.com/CuriousMike56/pssm-updater/pkg/log"
	"github.com/CuriousMike56/pssm-updater/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	rulesFile string
	debug     bool
)

// newRootCmd builds the CLI. The root command itself performs the update so
// the original surface `pssm-updater <materials-dir>` keeps working; check
// and restore are subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pssm-updater <materials-dir>",
		Short: "Update Ogre material scripts with PSSM shadows support",
		Long: `pssm-updater migrates qualifying material definitions in a directory of
.material scripts onto the shared RoR/Managed_Mats/Base material, giving
them PSSM shadow-mapping compatibility. Originals are backed up to an
old_materials/ subdirectory before being overwritten.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, op, err := newRunEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := op.Update(ctx); err != nil {
				return errors.Errorf("updating materials: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&rulesFile, "config", "c", "", "optional rules file (yaml, json or hcl)")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(newCheckCmd(), newRestoreCmd())
	return root
}

// newCheckCmd builds the dry-run subcommand.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <materials-dir>",
		Short: "Report what an update would rewrite, without writing anything",
		Long: `check runs the full classification over the directory but performs no
backups and no writes. Use it to preview a migration, or before re-running
on a directory that may already have been updated (a second update is not
idempotent and can double-suffix keywords).`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, op, err := newRunEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := op.Check(ctx); err != nil {
				return errors.Errorf("checking materials: %w", err)
			}
			return nil
		},
	}
}

// newRestoreCmd builds the backup-restore subcommand.
func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "restore <materials-dir>",
		Short:        "Copy backed-up originals from old_materials/ back into place",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, op, err := newRunEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := op.Restore(ctx); err != nil {
				return errors.Errorf("restoring materials: %w", err)
			}
			return nil
		},
	}
}

// newRunEnv wires the logger, rules and file manager for one run.
func newRunEnv(ctx context.Context, dir string) (context.Context, *operation.Operator, error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	cfg := config.Default()
	if rulesFile != "" {
		loaded, err := config.Load(ctx, rulesFile)
		if err != nil {
			return nil, nil, errors.Errorf("loading rules: %w", err)
		}
		cfg = loaded
	}

	files, err := fileset.New(dir, cfg.BackupDir)
	if err != nil {
		return nil, nil, err
	}

	console := log.New(os.Stdout, zlog)
	op, err := operation.New(operation.Options{
		Config:  cfg,
		Files:   files,
		Console: console,
	})
	if err != nil {
		return nil, nil, err
	}
	return ctx, op, nil
}
