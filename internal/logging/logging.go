// Package logging builds the zap logger the report is written through:
// a human-readable console stream on stderr plus an optional JSON file
// that always captures debug detail, both tagged with the build version
// and a per-run snapshot id.
package logging

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger sinks.
type Options struct {
	// ConsoleLevel is the stderr verbosity threshold.
	ConsoleLevel zapcore.Level
	// File is the JSON sink path, appended to at debug level. Empty
	// disables the sink.
	File string
	// Version tags every event with the build that emitted it.
	Version string
}

// New builds the logger. The returned close function flushes and
// releases the file sink and must run before process exit.
func New(opts Options) (*zap.Logger, func(), error) {
	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr), opts.ConsoleLevel),
	}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(f), zapcore.DebugLevel))
	}

	log := zap.New(zapcore.NewTee(cores...)).With(
		zap.String("version", opts.Version),
		zap.String("snapshot_id", uuid.NewString()),
	)
	closer := func() {
		_ = log.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return log, closer, nil
}
