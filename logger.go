package debugformat

import (
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/lmittmann/tint"
	slogformatter "github.com/samber/slog-formatter"
	slogmulti "github.com/samber/slog-multi"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sensitiveKeys holds keys masked when HideSensitiveData is set
var sensitiveKeys = []string{
	"password", "pwd", "pass", "passwd",
	"token", "jwt", "auth_token", "access_token", "refresh_token",
	"key", "api_key", "secret", "client_secret", "private_key",
}

// tintColors maps npm colors to the ANSI color numbers used by tint
var tintColors = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// NewLogger builds a slog.Logger from cfg. Records are also sent to every
// handler in extra.
//
// The returned closer releases the log file when Output is "file" and does
// nothing for stdout and stderr. Call it once the logger is no longer used.
func NewLogger(cfg LoggerConfig, extra ...slog.Handler) (*slog.Logger, io.Closer, error) {
	level := LevelInfo
	if cfg.Level != "" {
		var err error
		if level, err = ParseLevel(cfg.Level); err != nil {
			return nil, nil, err
		}
	}

	w, closer, file := openOutput(cfg)
	colors := !cfg.NoColor && file != nil && isTerminal(file)

	colorTable := NpmColors
	if len(cfg.ColorTable) > 0 {
		colorTable = ParseColorTable(cfg.ColorTable)
	}

	var handler slog.Handler
	switch cfg.Style {
	case StyleDebug, "":
		env := SystemEnvironment{Output: file}
		if file == nil {
			// files have no terminal to measure
			env.Width = defaultTerminalWidth
		}
		f := New(Config{
			Colors:      colorTable,
			ProcessName: cfg.ProcessName,
			BasePath:    cfg.BasePath,
			Env:         env,
		})
		opts, err := cfg.formatterOptions(f, colors)
		if err != nil {
			return nil, nil, err
		}
		handler = NewHandler(w, f, &HandlerOptions{Level: level, Format: &opts})
	case StyleCompact:
		handler = tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  dateLayout,
			NoColor:     !colors,
			ReplaceAttr: replaceLevel(colorTable),
		})
	default:
		return nil, nil, errors.WithDetails(
			errors.Errorf("unknown log style %q", cfg.Style),
			"supported", []string{StyleDebug, StyleCompact},
		)
	}

	var formatters []slogformatter.Formatter
	if cfg.HideSensitiveData {
		keys := append([]string{}, sensitiveKeys...)
		sort.Strings(keys)
		for _, k := range keys {
			formatters = append(formatters, slogformatter.PIIFormatter(k))
		}
		formatters = append(formatters,
			slogformatter.IPAddressFormatter("ip"),
			slogformatter.IPAddressFormatter("client_ip"),
			slogformatter.IPAddressFormatter("remote_addr"),
		)
	}
	if len(formatters) > 0 {
		handler = slogformatter.NewFormatterHandler(formatters...)(handler)
	}

	if len(extra) > 0 {
		handler = slogmulti.Fanout(append([]slog.Handler{handler}, extra...)...)
	}

	return slog.New(handler), closer, nil
}

// keepOpen is the closer of the standard streams, which outlive any logger.
type keepOpen struct{}

func (keepOpen) Close() error { return nil }

// openOutput returns the writer for cfg.Output, its closer and, when it is
// one, the underlying terminal candidate.
func openOutput(cfg LoggerConfig) (io.Writer, io.Closer, *os.File) {
	switch cfg.Output {
	case OutputStdout:
		return os.Stdout, keepOpen{}, os.Stdout
	case OutputStderr, "":
		return os.Stderr, keepOpen{}, os.Stderr
	case OutputFile:
		if cfg.FilePath == "" {
			slog.Warn("debugformat: file output without file path, falling back to stderr")
			return os.Stderr, keepOpen{}, os.Stderr
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		return lj, lj, nil
	default:
		slog.Warn("debugformat: unknown output, falling back to stderr", "output", cfg.Output)
		return os.Stderr, keepOpen{}, os.Stderr
	}
}

// replaceLevel renders levels with their npm names, colored from table
func replaceLevel(table ColorTable) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey || len(groups) > 0 {
			return a
		}
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		name := LevelName(level)
		a.Value = slog.StringValue(name)
		for _, token := range table[name] {
			if n, ok := tintColors[token]; ok {
				return tint.Attr(n, a)
			}
		}
		return a
	}
}
