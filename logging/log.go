// Package logging provides the structured, leveled logger used throughout
// this module, following the logging.CPrint / logging.LogFormat calling
// convention used across the txscript package.
package logging

import (
	"os"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// Level identifies a log severity, ordered from least to most severe.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

var levelToLogrus = map[Level]logrus.Level{
	TRACE: logrus.TraceLevel,
	DEBUG: logrus.DebugLevel,
	INFO:  logrus.InfoLevel,
	WARN:  logrus.WarnLevel,
	ERROR: logrus.ErrorLevel,
	FATAL: logrus.FatalLevel,
}

// LogFormat is a set of structured fields attached to a single log line.
type LogFormat map[string]interface{}

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
}

// UseRotatingFile switches the logger to a daily-rotated file at the given
// path prefix, using the lestrrat/go-file-rotatelogs + rifflock/lfshook
// pairing. Callers that only need stderr output (tests, the default)
// need not call this.
func UseRotatingFile(pathPrefix string, maxAgeHours int) error {
	writer, err := rotatelogs.New(
		pathPrefix+".%Y%m%d.log",
		rotatelogs.WithLinkName(pathPrefix),
		rotatelogs.WithMaxAge(time.Duration(maxAgeHours)*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return err
	}

	hook := lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
	}, &logrus.TextFormatter{})
	logger.AddHook(hook)
	return nil
}

// SetLevel adjusts the minimum level that will be emitted.
func SetLevel(l Level) {
	logger.SetLevel(levelToLogrus[l])
}

// CPrint logs msg at the given level with the supplied structured fields,
// mirroring `logging.CPrint(logging.TRACE, "stepping", ...)`
// call sites in txscript/engine.go.
func CPrint(level Level, msg string, fields LogFormat) {
	entry := logger.WithFields(logrus.Fields(fields))
	switch level {
	case TRACE:
		entry.Trace(msg)
	case DEBUG:
		entry.Debug(msg)
	case INFO:
		entry.Info(msg)
	case WARN:
		entry.Warn(msg)
	case ERROR:
		entry.Error(msg)
	case FATAL:
		entry.Fatal(msg)
	}
}
