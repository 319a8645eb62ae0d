// Package log layers human-readable console output over zerolog structured
// logging. The console lines are the tool's progress report for a person
// watching the run; the zerolog events carry the same facts for anything
// collecting structured logs.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// fileIndent is the number of spaces per-file detail lines are indented by.
const fileIndent = 2

// Console handles the dual console/structured output.
type Console struct {
	zlog zerolog.Logger
	out  io.Writer
	mu   sync.Mutex
}

// New creates a Console writing human-readable lines to out and mirroring
// them as structured events on zlog.
func New(out io.Writer, zlog zerolog.Logger) *Console {
	return &Console{zlog: zlog, out: out}
}

// Header prints the run banner.
func (c *Console) Header(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pssm-updater")
	fmt.Fprintf(c.out, "%s %s\n", name, color.New(color.Faint).Sprint("• "+msg))
	c.zlog.Info().Msg(msg)
}

// Infof prints a plain informational line.
func (c *Console) Infof(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, msg)
	c.zlog.Info().Msg(msg)
}

// Warningf prints a warning line.
func (c *Console) Warningf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, color.New(color.FgYellow).Sprint(msg))
	c.zlog.Warn().Msg(msg)
}

// Errorf prints an error line.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, color.New(color.FgRed).Sprint(msg))
	c.zlog.Error().Msg(msg)
}

// Processing announces that a file is being worked on.
func (c *Console) Processing(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Processing %s...\n", color.New(color.Bold).Sprint(name))
	c.zlog.Info().Str("file", name).Msg("processing file")
}

// FileUpdated reports a rewritten file and where its original went.
func (c *Console) FileUpdated(name string, materials int, backupPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%*supdated %d materials, original backed up to %s\n",
		fileIndent, "",
		materials,
		color.New(color.Faint).Sprint(backupPath))
	c.zlog.Info().
		Str("file", name).
		Int("materials", materials).
		Str("backup", backupPath).
		Msg("file updated")
}

// FileWouldUpdate reports what a dry run would rewrite.
func (c *Console) FileWouldUpdate(name string, materials int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%*swould update %d materials\n", fileIndent, "", materials)
	c.zlog.Info().Str("file", name).Int("materials", materials).Msg("file would be updated")
}

// FileSkipped reports a file with nothing to rewrite.
func (c *Console) FileSkipped(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%*s%s\n", fileIndent, "",
		color.New(color.Faint).Sprint("No eligible materials found"))
	c.zlog.Info().Str("file", name).Msg("no eligible materials")
}

// FileRestored reports a file copied back from its backup.
func (c *Console) FileRestored(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s restored %s\n", color.New(color.FgGreen).Sprint("✓"), name)
	c.zlog.Info().Str("file", name).Msg("file restored")
}

// Summary prints the final run tallies.
func (c *Console) Summary(filesUpdated, materialsFound, materialsUpdated int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bold := color.New(color.Bold)
	fmt.Fprintf(c.out, "\n%s\n", bold.Sprint("Summary:"))
	fmt.Fprintf(c.out, "Files processed: %d\n", filesUpdated)
	fmt.Fprintf(c.out, "Materials found: %d\n", materialsFound)
	fmt.Fprintf(c.out, "Materials updated with shadows support: %d\n", materialsUpdated)
	c.zlog.Info().
		Int("files_updated", filesUpdated).
		Int("materials_found", materialsFound).
		Int("materials_updated", materialsUpdated).
		Msg("run complete")
}
