package debugformat

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/dianlight/debugformat/exception"
)

// indent prefixes every line of the values block.
const indent = "    "

// dateLayout renders as "Jan 2 15:04:05".
const dateLayout = "Jan 2 15:04:05"

// Config configures a Formatter at construction.
type Config struct {
	// Levels is used to align level labels. Defaults to NpmLevels.
	Levels Levels
	// Colors defaults to NpmColors.
	Colors ColorTable
	// DisableColors resolves the default color table to none.
	DisableColors bool
	// ProcessName defaults to the invocation name of the program.
	ProcessName string
	// BasePath defaults to the working directory.
	BasePath string
	// Env defaults to SystemEnvironment.
	Env Environment
	// Colorizer defaults to ANSIColorizer.
	Colorizer Colorizer
}

// Options apply to a single Transform call.
// Start from Formatter.DefaultOptions: the zero value disables colors, the
// process name and the PID.
type Options struct {
	// Colors is looked up with the level of each record. Nil disables colors.
	Colors ColorTable
	// ProcessName is omitted from the prefix when empty.
	ProcessName string
	ShowPID     bool
	// BasePath marks stack frames as own code.
	BasePath          string
	MaxExceptionLines exception.MaxLines

	ColorizePrefix  bool
	ColorizeMessage bool
	ColorizeValues  bool

	// TerminalWidth overrides the width of the output terminal.
	TerminalWidth int
	Skip          Skipper
	// Stringifier defaults to JSONStringifier.
	Stringifier Stringifier
}

// Formatter renders records for console output.
// It is safe for concurrent use.
type Formatter struct {
	env            Environment
	colorizer      Colorizer
	colors         ColorTable
	processName    string
	basePath       string
	maxLevelLength int
}

// New creates a Formatter.
func New(cfg Config) *Formatter {
	f := &Formatter{
		env:         cfg.Env,
		colorizer:   cfg.Colorizer,
		colors:      cfg.Colors,
		processName: cfg.ProcessName,
		basePath:    cfg.BasePath,
	}

	if f.env == nil {
		f.env = SystemEnvironment{}
	}
	if f.colorizer == nil {
		f.colorizer = ANSIColorizer{}
	}
	if f.colors == nil {
		f.colors = NpmColors
	}
	if cfg.DisableColors {
		f.colors = nil
	}
	if f.processName == "" {
		f.processName = f.env.ProcessName()
	}
	if f.basePath == "" {
		f.basePath, _ = os.Getwd()
	}

	levels := cfg.Levels
	if len(levels) == 0 {
		levels = NpmLevels
	}
	f.maxLevelLength = levels.maxNameLength()

	return f
}

// DefaultOptions returns the options Transform uses unless told otherwise.
func (f *Formatter) DefaultOptions() Options {
	return Options{
		Colors:          f.colors,
		ProcessName:     f.processName,
		ShowPID:         true,
		BasePath:        f.basePath,
		ColorizeMessage: true,
		ColorizeValues:  true,
	}
}

// Transform renders rec into rec.Formatted and returns rec.
// It never fails: fields that cannot be rendered are left out.
func (f *Formatter) Transform(rec *Record, opts Options) *Record {
	level := rec.Level
	if level == "" {
		level = rec.getString(LevelKey)
	}
	if level == "" {
		level = "info"
	}

	prefix := f.prefix(rec, level, opts)

	var message string
	if v, ok := rec.Get(MessageKey); ok && v != nil {
		message = fmt.Sprint(v)
	}

	values := strings.Join(f.values(rec, opts), "\n")

	if tokens, ok := opts.Colors[level]; ok {
		if opts.ColorizePrefix {
			prefix = colorize(f.colorizer, prefix, tokens)
		}
		if opts.ColorizeMessage {
			message = colorize(f.colorizer, message, tokens)
		}
		if opts.ColorizeValues && values != "" {
			values = colorize(f.colorizer, values, tokens)
		}
	}

	out := prefix + " " + message
	if values != "" {
		out += "\n" + values
	}
	rec.Formatted = out

	return rec
}

// prefix renders "<date> <process>:<name>[<pid>] <LEVEL>:".
func (f *Formatter) prefix(rec *Record, level string, opts Options) string {
	t := rec.Time
	if t.IsZero() {
		t = f.env.Now()
	}

	var b strings.Builder
	b.WriteString(t.Format(dateLayout))
	b.WriteByte(' ')

	source := opts.ProcessName
	if name := rec.getString(NameKey); name != "" {
		source += ":" + name
	}
	if opts.ShowPID {
		source += "[" + strconv.Itoa(f.env.PID()) + "]"
	}
	if source != "" {
		b.WriteString(source)
		b.WriteByte(' ')
	}

	label := strings.ToUpper(level) + ":"
	b.WriteString(label)
	if pad := f.maxLevelLength + 1 - len(label); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	return b.String()
}

func (f *Formatter) values(rec *Record, opts Options) []string {
	stringifier := opts.Stringifier
	if stringifier == nil {
		stringifier = JSONStringifier{}
	}
	width := opts.TerminalWidth
	if width <= 0 {
		width = f.env.TerminalWidth()
	}
	if width <= 0 {
		width = defaultTerminalWidth
	}

	var lines []string
	for _, field := range rec.Fields {
		if reserved.Skip(field.Key, field.Value) {
			continue
		}
		if opts.Skip != nil && opts.Skip.Skip(field.Key, field.Value) {
			continue
		}

		switch v := field.Value.(type) {
		case nil:
			continue
		case error:
			if isNilPointer(v) {
				continue
			}
			lines = append(lines, indent+field.Key+": "+f.formatError(v, opts))
		case string:
			if v == "" {
				continue
			}
			lines = appendValue(lines, field.Key, v, stringifier, width)
		default:
			lines = appendValue(lines, field.Key, v, stringifier, width)
		}
	}
	return lines
}

func appendValue(lines []string, key string, v any, stringifier Stringifier, width int) []string {
	s, err := stringifier.Stringify(v)
	if err != nil || s == "" {
		return lines
	}
	// multi-line renderings stay inside the values block, each line cut on its own
	for i, line := range strings.Split(s, "\n") {
		if i == 0 {
			line = indent + key + ": " + line
		} else {
			line = indent + line
		}
		lines = append(lines, truncateLine(line, width))
	}
	return lines
}

// truncateLine cuts lines of width runes or more to width-3 runes and an ellipsis.
func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) < width {
		return line
	}
	keep := max(width-3, 0)
	return string(runes[:keep]) + "..."
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (f *Formatter) formatError(err error, opts Options) string {
	formatted := exception.Format(err, exception.Options{
		NoColor:  opts.Colors == nil,
		BasePath: opts.BasePath,
		MaxLines: opts.MaxExceptionLines,
	})
	return strings.ReplaceAll(formatted, "\n", "\n"+indent)
}
