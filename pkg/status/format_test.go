package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

// 🧪 TestDefaultFileFormatter tests the default file formatter implementation
func TestDefaultFileFormatter(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		status       FileStatus
		replacements int
		want         string
	}{
		{name: "modified_file", path: "config.yaml", status: StatusModified, replacements: 3, want: "📝 Modified config.yaml (3 replacements)"},
		{name: "unchanged_file", path: "stable.txt", status: StatusUnchanged, want: "👍 Unchanged stable.txt"},
		{name: "skipped_file", path: "image.png", status: StatusSkipped, want: "⏭️  Skipped image.png"},
		{name: "failed_file", path: "error.txt", status: StatusFailed, want: "❌ Failed error.txt"},
		{name: "unknown_status", path: "odd.txt", status: StatusUnknown, want: "👍 Unchanged odd.txt"},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatFileOperation(tt.path, tt.status, tt.replacements)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "zero_progress", current: 0, total: 10, want: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, want: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, want: "✅ Progress: 10/10 (100%)"},
		{name: "empty_run", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFormatError(t *testing.T) {
	formatter := NewDefaultFileFormatter()
	assert.Equal(t, "", formatter.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", formatter.FormatError(errors.New("boom")))
}
