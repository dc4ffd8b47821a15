package debugformat

import (
	"github.com/ilyakaznacheev/cleanenv"
	"gitlab.com/tozd/go/errors"

	"github.com/dianlight/debugformat/exception"
)

// Supported styles.
const (
	StyleDebug   = "debug"
	StyleCompact = "compact"
)

// Supported outputs.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// LoggerConfig configures NewLogger. It can be read from a YAML, JSON, TOML
// or .env file and from DEBUGFMT_* environment variables with LoadConfig.
type LoggerConfig struct {
	// Level is the minimum level logged: silly, debug, verbose, http, info, warn or error.
	Level string `yaml:"level" json:"level" env:"DEBUGFMT_LEVEL" env-default:"info"`

	// Style is "debug" for the multi-line debug format or "compact" for one
	// line per record.
	Style string `yaml:"style" json:"style" env:"DEBUGFMT_STYLE" env-default:"debug"`

	// Output is stdout, stderr or file.
	Output string `yaml:"output" json:"output" env:"DEBUGFMT_OUTPUT" env-default:"stderr"`

	// File rotation, used when Output is "file".
	FilePath   string `yaml:"filePath" json:"filePath" env:"DEBUGFMT_FILE_PATH"`
	MaxSize    int    `yaml:"maxSize" json:"maxSize" env:"DEBUGFMT_MAX_SIZE" env-default:"100"`
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups" env:"DEBUGFMT_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"maxAge" json:"maxAge" env:"DEBUGFMT_MAX_AGE" env-default:"7"`
	Compress   bool   `yaml:"compress" json:"compress" env:"DEBUGFMT_COMPRESS"`

	// NoColor disables colors. They are also off when the output is not a terminal.
	NoColor bool `yaml:"noColor" json:"noColor" env:"DEBUGFMT_NO_COLOR"`
	// ColorTable overrides level colors, e.g. {"error": "bold red"}.
	ColorTable map[string]string `yaml:"colorTable" json:"colorTable" env:"DEBUGFMT_COLOR_TABLE"`

	ProcessName string `yaml:"processName" json:"processName" env:"DEBUGFMT_PROCESS_NAME"`
	HidePID     bool   `yaml:"hidePID" json:"hidePID" env:"DEBUGFMT_HIDE_PID"`
	BasePath    string `yaml:"basePath" json:"basePath" env:"DEBUGFMT_BASE_PATH"`

	// MaxExceptionLines is empty for no limit, "auto" or a line count.
	MaxExceptionLines string `yaml:"maxExceptionLines" json:"maxExceptionLines" env:"DEBUGFMT_MAX_EXCEPTION_LINES"`

	TerminalWidth int `yaml:"terminalWidth" json:"terminalWidth" env:"DEBUGFMT_TERMINAL_WIDTH"`

	// Skip lists fields never rendered.
	Skip []string `yaml:"skip" json:"skip" env:"DEBUGFMT_SKIP" env-separator:","`

	// HideSensitiveData masks PII fields such as password or token.
	HideSensitiveData bool `yaml:"hideSensitiveData" json:"hideSensitiveData" env:"DEBUGFMT_HIDE_SENSITIVE_DATA"`
}

// LoadConfig reads path, when not empty, then applies DEBUGFMT_* environment
// variables on top of it.
func LoadConfig(path string) (LoggerConfig, error) {
	var cfg LoggerConfig

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, errors.Wrap(err, "reading logger config from environment")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, errors.WithDetails(
			errors.Wrap(err, "reading logger config"),
			"path", path,
		)
	}
	return cfg, nil
}

// formatterOptions resolves the parts of cfg that only depend on cfg itself.
func (cfg LoggerConfig) formatterOptions(f *Formatter, colors bool) (Options, error) {
	opts := f.DefaultOptions()

	maxLines, err := exception.ParseMaxLines(cfg.MaxExceptionLines)
	if err != nil {
		return opts, err
	}
	opts.MaxExceptionLines = maxLines
	opts.ShowPID = !cfg.HidePID
	opts.TerminalWidth = cfg.TerminalWidth
	if !colors {
		opts.Colors = nil
	}
	if len(cfg.Skip) > 0 {
		opts.Skip = SkipKeys(cfg.Skip...)
	}
	return opts, nil
}
