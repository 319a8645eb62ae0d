package operation_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/CuriousMike56/pssm-updater/pkg/config"
	"github.com/CuriousMike56/pssm-updater/pkg/fileset"
	"github.com/CuriousMike56/pssm-updater/pkg/log"
	"github.com/CuriousMike56/pssm-updater/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eligibleFile = `material Crash/Test
{
    technique
    {
        pass
        {
            texture_unit
            {
                texture crash.png
            }
        }
    }
}
`

const eligibleFileUpdated = `import * from "managed_mats.material"

material Crash/Test: RoR/Managed_Mats/Base
{
    technique BaseTechnique
    {
        pass BaseRender
        {
            texture_unit Diffuse_Map
            {
                texture crash.png
            }
        }
    }
}`

const shaderFile = `material Shaded
{
    technique
    {
        pass
        {
            fragment_program_ref Shadow/PSSM
            {
            }
            texture_unit
            {
            }
        }
    }
}
`

// newTestOperator wires an operator over dir with default rules and
// test-captured logging.
func newTestOperator(t *testing.T, dir string) (context.Context, *operation.Operator) {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	files, err := fileset.New(dir, "old_materials")
	require.NoError(t, err)

	op, err := operation.New(operation.Options{
		Config:  config.Default(),
		Files:   files,
		Console: log.New(io.Discard, logger),
	})
	require.NoError(t, err)
	return ctx, op
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func TestNew_MissingDependencies(t *testing.T) {
	_, err := operation.New(operation.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestUpdate_EligibleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crash.material", eligibleFile)
	ctx, op := newTestOperator(t, dir)

	report, err := op.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesUpdated)
	assert.Equal(t, 1, report.MaterialsFound)
	assert.Equal(t, 1, report.MaterialsUpdated)

	assert.Equal(t, eligibleFileUpdated, readFile(t, dir, "crash.material"))

	// Backup is byte-identical to the original.
	backup := readFile(t, filepath.Join(dir, "old_materials"), "crash.material")
	assert.Equal(t, eligibleFile, backup)
}

func TestUpdate_IneligibleFileUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shaded.material", shaderFile)
	ctx, op := newTestOperator(t, dir)

	report, err := op.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesUpdated)
	assert.Equal(t, 1, report.MaterialsFound)
	assert.Equal(t, 0, report.MaterialsUpdated)

	assert.Equal(t, shaderFile, readFile(t, dir, "shaded.material"))

	// No backup directory was created.
	_, err = os.Stat(filepath.Join(dir, "old_materials"))
	assert.True(t, os.IsNotExist(err))
}

func TestUpdate_FileWithoutMaterials(t *testing.T) {
	dir := t.TempDir()
	content := "particle_system Smoke\n{\n}\n"
	writeFile(t, dir, "fx.material", content)
	ctx, op := newTestOperator(t, dir)

	report, err := op.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesUpdated)
	assert.Equal(t, 0, report.MaterialsFound)
	assert.Equal(t, content, readFile(t, dir, "fx.material"))
}

func TestUpdate_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	ctx, op := newTestOperator(t, dir)

	report, err := op.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, &operation.Report{}, report)

	// The run must leave the directory pristine.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdate_MixedFile(t *testing.T) {
	dir := t.TempDir()
	twoTextureUnits := "material Multi\n{\n    technique\n    {\n        pass\n        {\n            texture_unit\n            {\n            }\n            texture_unit\n            {\n            }\n        }\n    }\n}\n"
	writeFile(t, dir, "mixed.material", eligibleFile+"\n"+twoTextureUnits)
	ctx, op := newTestOperator(t, dir)

	report, err := op.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesUpdated)
	assert.Equal(t, 2, report.MaterialsFound)
	assert.Equal(t, 1, report.MaterialsUpdated)

	got := readFile(t, dir, "mixed.material")
	assert.Contains(t, got, "material Crash/Test: RoR/Managed_Mats/Base")
	// The ineligible block passes through with its text intact.
	assert.Contains(t, got, "material Multi\n{\n    technique\n    {\n        pass\n        {\n            texture_unit\n            {\n            }\n            texture_unit\n            {\n            }\n        }\n    }\n}\n")
	assert.NotContains(t, got, "material Multi: RoR/Managed_Mats/Base")
}

func TestCheck_WritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crash.material", eligibleFile)
	ctx, op := newTestOperator(t, dir)

	report, err := op.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesUpdated)
	assert.Equal(t, 1, report.MaterialsUpdated)

	assert.Equal(t, eligibleFile, readFile(t, dir, "crash.material"))
	_, err = os.Stat(filepath.Join(dir, "old_materials"))
	assert.True(t, os.IsNotExist(err))
}

func TestRestore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crash.material", eligibleFile)
	ctx, op := newTestOperator(t, dir)

	_, err := op.Update(ctx)
	require.NoError(t, err)
	require.NotEqual(t, eligibleFile, readFile(t, dir, "crash.material"))

	restored, err := op.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, eligibleFile, readFile(t, dir, "crash.material"))
}

func TestRestore_NoBackups(t *testing.T) {
	dir := t.TempDir()
	ctx, op := newTestOperator(t, dir)

	restored, err := op.Restore(ctx)
	require.NoError(t, err)
	assert.Zero(t, restored)
}
