package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomkd/internal/ui/pretty"
	"github.com/yaklabco/gomkd/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No Markdown files found\n",
		},
		{
			name: "all rendered",
			stats: runner.Stats{
				FilesDiscovered: 12,
				FilesRendered:   12,
				BytesWritten:    48213,
				Duration:        35 * time.Millisecond,
			},
			want: "12 files rendered, 0 failed, 48213 bytes in 35ms\n",
		},
		{
			name: "single file with failure",
			stats: runner.Stats{
				FilesDiscovered: 2,
				FilesRendered:   1,
				FilesErrored:    1,
				BytesWritten:    10,
				Duration:        1500 * time.Microsecond,
			},
			want: "1 file rendered, 1 failed, 10 bytes in 2ms\n",
		},
		{
			name: "unchanged files",
			stats: runner.Stats{
				FilesDiscovered: 3,
				FilesRendered:   3,
				FilesUnchanged:  2,
				BytesWritten:    7,
				Duration:        time.Second,
			},
			want: "3 files rendered, 0 failed, 7 bytes in 1s (2 unchanged)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 10,
		FilesRendered:   9,
		FilesUnchanged:  4,
		FilesErrored:    1,
		BytesWritten:    1234,
		Duration:        2 * time.Second,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files found:       10")
	assert.Contains(t, result, "Files rendered:    9")
	assert.Contains(t, result, "Unchanged:       4")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Bytes written:     1234")
	assert.Contains(t, result, "Duration:          2s")
	assert.Contains(t, result, "Render failed for some files")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesRendered: 1})

	assert.Contains(t, result, "Render complete")
	assert.NotContains(t, result, "Files failed:")
	assert.NotContains(t, result, "Unchanged:")
}
