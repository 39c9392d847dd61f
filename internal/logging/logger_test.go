// ABOUTME: Tests for global logger setup.
// ABOUTME: Verifies level parsing and file output through lumberjack.
package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"", logrus.WarnLevel},
		{"loud", logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GetLevel(tt.in))
		})
	}
}

func TestSetupStderr(t *testing.T) {
	t.Cleanup(resetLogger)

	closer := Setup(Params{Level: "debug"})
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.Equal(t, os.Stderr, logrus.StandardLogger().Out)
}

func TestSetupFile(t *testing.T) {
	t.Cleanup(resetLogger)

	path := filepath.Join(t.TempDir(), "bodylog")
	closer := Setup(Params{Level: "info", File: path, JSON: true})

	logrus.WithField("records", 3).Info("store loaded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"store loaded"`)
	assert.Contains(t, string(data), `"records":3`)
}

func resetLogger() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}
