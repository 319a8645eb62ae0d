// Package config holds the rewrite rules for an updater run. The defaults
// reproduce the stock RoR managed-materials migration; an optional config
// file (YAML, JSON or HCL) overrides individual fields.
package config

import (
	"github.com/CuriousMike56/pssm-updater/pkg/material"
	"gitlab.com/tozd/go/errors"
)

// Config captures every tunable of the updater. The zero value is not
// usable; start from Default and overlay a file with Load.
type Config struct {
	// Pattern matches material file names directly under the input
	// directory (doublestar syntax).
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
	// BackupDir is the name of the backup subdirectory created under the
	// input directory.
	BackupDir string `json:"backup_dir,omitempty" yaml:"backup_dir,omitempty" hcl:"backup_dir,optional"`
	// BaseMaterial is the shared namespace path rewritten materials derive
	// from.
	BaseMaterial string `json:"base_material,omitempty" yaml:"base_material,omitempty" hcl:"base_material,optional"`
	// ImportLine is prepended to every rewritten file.
	ImportLine string `json:"import_line,omitempty" yaml:"import_line,omitempty" hcl:"import_line,optional"`

	TechniqueSuffix   string   `json:"technique_suffix,omitempty" yaml:"technique_suffix,omitempty" hcl:"technique_suffix,optional"`
	PassSuffix        string   `json:"pass_suffix,omitempty" yaml:"pass_suffix,omitempty" hcl:"pass_suffix,optional"`
	TextureUnitSuffix string   `json:"texture_unit_suffix,omitempty" yaml:"texture_unit_suffix,omitempty" hcl:"texture_unit_suffix,optional"`
	Disqualifiers     []string `json:"disqualifiers,omitempty" yaml:"disqualifiers,omitempty" hcl:"disqualifiers,optional"`
	MinPasses         int      `json:"min_passes,omitempty" yaml:"min_passes,omitempty" hcl:"min_passes,optional"`
	MaxPasses         int      `json:"max_passes,omitempty" yaml:"max_passes,omitempty" hcl:"max_passes,optional"`
}

// Default returns the stock configuration.
func Default() *Config {
	opts := material.DefaultOptions()
	return &Config{
		Pattern:           "*.material",
		BackupDir:         "old_materials",
		BaseMaterial:      opts.BaseMaterial,
		ImportLine:        `import * from "managed_mats.material"`,
		TechniqueSuffix:   opts.TechniqueSuffix,
		PassSuffix:        opts.PassSuffix,
		TextureUnitSuffix: opts.TextureUnitSuffix,
		Disqualifiers:     opts.Disqualifiers,
		MinPasses:         opts.MinPasses,
		MaxPasses:         opts.MaxPasses,
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return errors.Errorf("pattern is required")
	}
	if c.BackupDir == "" {
		return errors.Errorf("backup_dir is required")
	}
	if c.BaseMaterial == "" {
		return errors.Errorf("base_material is required")
	}
	if c.ImportLine == "" {
		return errors.Errorf("import_line is required")
	}
	if c.MinPasses < 1 {
		return errors.Errorf("min_passes must be at least 1, got %d", c.MinPasses)
	}
	if c.MaxPasses < c.MinPasses {
		return errors.Errorf("max_passes (%d) must not be below min_passes (%d)", c.MaxPasses, c.MinPasses)
	}
	return nil
}

// RewriteOptions converts the configuration into the rules consumed by the
// material rewriter.
func (c *Config) RewriteOptions() material.Options {
	return material.Options{
		BaseMaterial:      c.BaseMaterial,
		TechniqueSuffix:   c.TechniqueSuffix,
		PassSuffix:        c.PassSuffix,
		TextureUnitSuffix: c.TextureUnitSuffix,
		Disqualifiers:     c.Disqualifiers,
		MinPasses:         c.MinPasses,
		MaxPasses:         c.MaxPasses,
	}
}
