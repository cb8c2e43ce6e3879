// Package logger writes application logs to a rotating file under the
// config directory so commands stay quiet on stderr. Debug mode lowers
// the level and mirrors output to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nirmalgaihre/naamjap/internal/constants"
)

// std discards everything until Init runs, so packages can log during
// early startup (and in tests) without a nil check.
var std = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})

// Init routes logs to <dir>/logs/naamjap.log with size-based rotation.
func Init(dir string, debug bool) error {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	rotor := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = rotor
	level := log.WarnLevel
	if debug {
		w = io.MultiWriter(os.Stderr, rotor)
		level = log.DebugLevel
	}

	std = log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...any) { std.Debug(msg, keyvals...) }

func Info(msg string, keyvals ...any) { std.Info(msg, keyvals...) }

func Warn(msg string, keyvals ...any) { std.Warn(msg, keyvals...) }

func Error(msg string, keyvals ...any) { std.Error(msg, keyvals...) }
