package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until InitLogger runs so
// packages can log unconditionally.
var Log = zap.NewNop()

// Debug is true when NEXUS_DEBUG enabled the file log.
var Debug = false

// InitLogger configures Log. The TUI owns the terminal, so output goes to
// <dataDir>/debug.log when NEXUS_DEBUG is set; verbose (CLI only) logs to
// stderr at debug level. Otherwise logging stays disabled.
func InitLogger(dataDir string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config

	switch {
	case CheckDebug():
		logPath := filepath.Join(dataDir, "debug.log")
		// 0600: the log can contain prompts and replies
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open debug log at %s: %w", logPath, err)
		}
		f.Close()

		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{logPath}
		cfg.ErrorOutputPaths = []string{logPath}
		Debug = true
	case verbose:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		Log = zap.NewNop()
		return Log, nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	Log = logger
	if Debug {
		Log.Debug("debug logging started", zap.String("data_dir", dataDir))
	}
	return Log, nil
}
