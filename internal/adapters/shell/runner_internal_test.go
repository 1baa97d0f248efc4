package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		hookEnv  []string
		expected []string
	}{
		{
			name:     "System Only",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"USER=test", "PATH=/bin"},
		},
		{
			name:     "Hook Adds",
			sysEnv:   []string{"PATH=/bin"},
			hookEnv:  []string{"PACK_FORMAT=esm"},
			expected: []string{"PATH=/bin", "PACK_FORMAT=esm"},
		},
		{
			name:     "Hook Overrides In Place",
			sysEnv:   []string{"NODE_ENV=development", "PATH=/bin"},
			hookEnv:  []string{"NODE_ENV=production"},
			expected: []string{"NODE_ENV=production", "PATH=/bin"},
		},
		{
			name:     "Malformed Entries Dropped",
			sysEnv:   []string{"BROKEN", "PATH=/bin"},
			expected: []string{"PATH=/bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.hookEnv))
		})
	}
}

func TestLookPath_EmptyPATH(t *testing.T) {
	_, err := lookPath("sh", []string{"USER=test"})
	assert.Error(t, err)
}

func TestLookPath_ExecutableNotFound(t *testing.T) {
	_, err := lookPath("nonexistent-command", []string{"PATH=/nonexistent/dir"})
	assert.Error(t, err)
}

func TestFindExecutable_Directory(t *testing.T) {
	assert.Error(t, findExecutable(t.TempDir()))
}

func TestLogWriter_FragmentedLines(t *testing.T) {
	var lines []string
	w := &logWriter{emit: func(s string) { lines = append(lines, s) }}

	_, _ = w.Write([]byte("par"))
	_, _ = w.Write([]byte("t1\r\npart2\nta"))
	_, _ = w.Write([]byte("il"))
	_ = w.Close()

	assert.Equal(t, []string{"part1", "part2", "tail"}, lines)
}
