package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.verbose)

			logger.Debug("debug line", "file", "package.json")
			logger.Info("info line")
			logger.Warn("warn line", "root", "/tmp/demo")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Contains(t, out, "warn line")
			assert.Contains(t, out, "/tmp/demo")
			assert.Contains(t, out, Prefix)
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotNil(t, logger)
	logger.Error("dropped")
}
