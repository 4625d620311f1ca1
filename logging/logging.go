// Package logging builds the process logger. The animation owns the terminal,
// so log output only ever goes to a rotated file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/evergreen/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultDir is the log directory relative to the working directory
const DefaultDir = "logs"

// Setup returns a discarding logger unless debug is set, in which case entries
// are written as JSON to dir/evergreen.log with size based rotation.
// The returned close func syncs and releases the file.
func Setup(debug bool, dir string) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   Path(dir),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(sink),
		zap.DebugLevel,
	)
	logger := zap.New(core, zap.AddCaller())

	logger.Info("logging started", zap.Int("pid", os.Getpid()))

	closeFn := func() {
		logger.Sync()
		sink.Close()
	}
	return logger, closeFn, nil
}

// Path returns the active log file inside dir
func Path(dir string) string {
	return filepath.Join(dir, constants.LogFileName)
}
