package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/herogen.txt"

const timeLayout = "2006-01-02 15:04:05"

// Options selects the level and sinks. An empty File disables the file sink;
// a nil Console writes to stderr.
type Options struct {
	Level   string
	File    string
	Console io.Writer
}

// Logger is a zap logger that also keeps every entry it writes in memory as a
// timestamped line, so callers can replay what happened during a run.
type Logger struct {
	*zap.Logger

	mu    sync.Mutex
	lines []string
	file  *os.File
}

// New builds a logger with a console core and, when opts.File is set, a JSON
// core appending to that file. The file's directory is created if needed.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = lvl
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	l := &Logger{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			level,
		))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.Hooks(l.record))
	return l, nil
}

// Nop returns a logger that discards everything and records nothing.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) record(e zapcore.Entry) error {
	line := fmt.Sprintf("[%s] %s %s", e.Time.Format(timeLayout), e.Level.CapitalString(), e.Message)
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	return nil
}

// Log writes line at info level.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of all recorded lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	// Syncing a terminal fails on some platforms; only the file matters.
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
