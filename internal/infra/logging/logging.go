// Package logging wires github.com/go-pkgz/lgr into the node's configured
// level/format/output, with an optional log/slog JSON handler for
// structured output.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-pkgz/lgr"
)

const (
	levelTrace = "trace"
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"

	formatJSON = "json"
	formatText = "text"

	outputStdout = "stdout"
	outputStderr = "stderr"
)

// Config controls level, output destination, and structured-logging
// behavior.
type Config struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`

	CallerInfo      CallerConfig `yaml:"caller" json:"caller"`
	SecretMask      []string     `yaml:"secrets" json:"secrets"`
	StackTraceError bool         `yaml:"stack_trace_error" json:"stack_trace_error"`

	JSONConfig JSONConfig `yaml:"json" json:"json"`
}

// JSONConfig controls slog.JSONHandler behavior when Format is "json".
type JSONConfig struct {
	AddSource   bool `yaml:"add_source" json:"add_source"`
	ReplaceAttr bool `yaml:"replace_attr" json:"replace_attr"`
}

// CallerConfig controls caller information attached to text-format logs.
type CallerConfig struct {
	Enabled  bool `yaml:"enabled" json:"enabled"`
	File     bool `yaml:"file" json:"file"`
	Function bool `yaml:"function" json:"function"`
}

// New returns a logger at the given level with sane text-format defaults.
// It never fails: a malformed level falls back to debug-on-stdout.
func New(level string) lgr.L {
	logger, err := NewWithConfig(Config{Level: level, Format: formatText, Output: outputStdout})
	if err != nil {
		return lgr.New(lgr.Debug, lgr.Msec, lgr.LevelBraces)
	}
	return logger
}

// NewWithConfig builds a logger from a full Config, validating level/format
// and choosing between the plain lgr text renderer and a slog-backed JSON
// handler.
func NewWithConfig(cfg Config) (lgr.L, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	output, err := outputWriter(cfg.Output)
	if err != nil {
		return nil, err
	}

	options := []lgr.Option{lgr.Msec}
	switch strings.ToLower(cfg.Level) {
	case levelTrace:
		options = append(options, lgr.Trace)
	case levelDebug:
		options = append(options, lgr.Debug)
	}

	isJSON := strings.ToLower(cfg.Format) == formatJSON
	if isJSON {
		options = append(options, lgr.SlogHandler(jsonHandler(cfg, output)))
		return lgr.New(options...), nil
	}

	options = append(options, lgr.LevelBraces, lgr.Out(output))
	if cfg.CallerInfo.Enabled {
		if cfg.CallerInfo.File {
			options = append(options, lgr.CallerFile)
		}
		if cfg.CallerInfo.Function {
			options = append(options, lgr.CallerFunc)
		}
	}
	if len(cfg.SecretMask) > 0 {
		options = append(options, lgr.Secret(cfg.SecretMask...))
	}
	if cfg.StackTraceError {
		options = append(options, lgr.StackTraceOnError)
	}
	if strings.ToLower(cfg.Output) != outputStderr {
		options = append(options, lgr.Err(os.Stderr))
	}

	return lgr.New(options...), nil
}

func jsonHandler(cfg Config, output io.Writer) *slog.JSONHandler {
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.JSONConfig.AddSource}
	if cfg.JSONConfig.ReplaceAttr {
		opts.ReplaceAttr = replaceAttrFunc(cfg)
	}
	return slog.NewJSONHandler(output, opts)
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case levelTrace, levelDebug:
		return slog.LevelDebug
	case levelWarn:
		return slog.LevelWarn
	case levelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttrFunc(cfg Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(cfg.SecretMask) > 0 && a.Key == slog.MessageKey {
			value := a.Value.String()
			for _, secret := range cfg.SecretMask {
				value = strings.ReplaceAll(value, secret, "[REDACTED]")
			}
			return slog.Attr{Key: a.Key, Value: slog.StringValue(value)}
		}
		if a.Key == slog.TimeKey {
			return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02T15:04:05.000Z07:00"))}
		}
		return a
	}
}

func validate(cfg Config) error {
	level := strings.ToLower(cfg.Level)
	if level != "" && !oneOf(level, levelTrace, levelDebug, levelInfo, levelWarn, levelError) {
		return errors.New("invalid log level: " + cfg.Level)
	}
	format := strings.ToLower(cfg.Format)
	if format != "" && !oneOf(format, formatText, formatJSON) {
		return errors.New("invalid log format: " + cfg.Format)
	}
	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func outputWriter(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", outputStdout:
		return os.Stdout, nil
	case outputStderr:
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, errors.New("failed to open log file " + output + ": " + err.Error())
		}
		return f, nil
	}
}
