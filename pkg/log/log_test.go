package log

import (
	"bytes"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConsoleLines(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   func(c *Console)
		want string
	}{
		{
			name: "processing",
			op:   func(c *Console) { c.Processing("crash.material") },
			want: "Processing crash.material...\n",
		},
		{
			name: "file_updated",
			op:   func(c *Console) { c.FileUpdated("crash.material", 3, "old_materials/crash.material") },
			want: "  updated 3 materials, original backed up to old_materials/crash.material\n",
		},
		{
			name: "file_skipped",
			op:   func(c *Console) { c.FileSkipped("crash.material") },
			want: "  No eligible materials found\n",
		},
		{
			name: "no_files_found",
			op:   func(c *Console) { c.Warningf("No %s files found!", ".material") },
			want: "No .material files found!\n",
		},
		{
			name: "summary",
			op:   func(c *Console) { c.Summary(1, 4, 2) },
			want: "\nSummary:\nFiles processed: 1\nMaterials found: 4\nMaterials updated with shadows support: 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			console := New(&buf, zerolog.New(io.Discard))
			tt.op(console)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
