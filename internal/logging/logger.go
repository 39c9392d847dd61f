// ABOUTME: Global logrus setup for the CLI and MCP server.
// ABOUTME: Logs go to stderr, or to a rotating file via lumberjack when configured.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLevel keeps the CLI quiet unless something needs attention.
const DefaultLevel = "warn"

// Params configures the global logger.
type Params struct {
	Level string
	// File, when set, sends logs to a rotating file instead of stderr.
	File string
	JSON bool
}

// Setup configures the global logrus logger and returns a closer for the log output.
// Stdout is never used: the MCP server speaks its protocol there.
func Setup(params Params) io.Closer {
	if params.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: params.File == ""})
	}

	logrus.SetLevel(GetLevel(params.Level))

	if params.File == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if !strings.HasSuffix(params.File, ".log") {
		params.File += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.File,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false,
		Compress:   true,
	}
	logrus.SetOutput(lumberJackLogger)
	return lumberJackLogger
}

// GetLevel maps a level name to a logrus level, falling back to DefaultLevel.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
