package config_test

import (
	"testing"

	"github.com/CuriousMike56/pssm-updater/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "*.material", cfg.Pattern)
	assert.Equal(t, "old_materials", cfg.BackupDir)
	assert.Equal(t, "RoR/Managed_Mats/Base", cfg.BaseMaterial)
	assert.Equal(t, `import * from "managed_mats.material"`, cfg.ImportLine)
	assert.Equal(t, 1, cfg.MinPasses)
	assert.Equal(t, 2, cfg.MaxPasses)
	assert.Equal(t, []string{"vertex_program_ref", "fragment_program_ref", "tex_coord_set"}, cfg.Disqualifiers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantError string
	}{
		{
			name:   "default_is_valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:      "empty_pattern",
			mutate:    func(c *config.Config) { c.Pattern = "" },
			wantError: "pattern is required",
		},
		{
			name:      "empty_backup_dir",
			mutate:    func(c *config.Config) { c.BackupDir = "" },
			wantError: "backup_dir is required",
		},
		{
			name:      "empty_base_material",
			mutate:    func(c *config.Config) { c.BaseMaterial = "" },
			wantError: "base_material is required",
		},
		{
			name:      "zero_min_passes",
			mutate:    func(c *config.Config) { c.MinPasses = 0 },
			wantError: "min_passes must be at least 1",
		},
		{
			name:      "max_below_min",
			mutate:    func(c *config.Config) { c.MinPasses = 3; c.MaxPasses = 2 },
			wantError: "must not be below min_passes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRewriteOptions(t *testing.T) {
	cfg := config.Default()
	cfg.BaseMaterial = "My/Base"
	cfg.MaxPasses = 3

	opts := cfg.RewriteOptions()
	assert.Equal(t, "My/Base", opts.BaseMaterial)
	assert.Equal(t, 3, opts.MaxPasses)
	assert.Equal(t, cfg.Disqualifiers, opts.Disqualifiers)
}
