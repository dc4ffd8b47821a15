package debugformat

import (
	"log/slog"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Levels maps level names to priorities, lower meaning more severe.
type Levels map[string]int

// NpmLevels is the default level set.
var NpmLevels = Levels{
	"error":   0,
	"warn":    1,
	"info":    2,
	"http":    3,
	"verbose": 4,
	"debug":   5,
	"silly":   6,
}

// slog levels for the npm names that slog does not define
const (
	LevelSilly   slog.Level = -8
	LevelDebug   slog.Level = slog.LevelDebug
	LevelVerbose slog.Level = -3
	LevelHTTP    slog.Level = -2
	LevelInfo    slog.Level = slog.LevelInfo
	LevelWarn    slog.Level = slog.LevelWarn
	LevelError   slog.Level = slog.LevelError
)

// levelNames maps level strings to slog.Level values
var levelNames = map[string]slog.Level{
	"silly":   LevelSilly,
	"trace":   LevelSilly, // alias for silly
	"debug":   LevelDebug,
	"verbose": LevelVerbose,
	"http":    LevelHTTP,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn, // alias for warn
	"error":   LevelError,
}

// maxNameLength returns the length of the longest level name.
func (l Levels) maxNameLength() int {
	longest := 0
	for name := range l {
		longest = max(longest, len(name))
	}
	return longest
}

// LevelName returns the npm level name for a slog level.
// Levels between two names round down to the more verbose one.
func LevelName(level slog.Level) string {
	switch {
	case level >= LevelError:
		return "error"
	case level >= LevelWarn:
		return "warn"
	case level >= LevelInfo:
		return "info"
	case level >= LevelHTTP:
		return "http"
	case level >= LevelVerbose:
		return "verbose"
	case level >= LevelDebug:
		return "debug"
	default:
		return "silly"
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("log level cannot be empty")
	}

	level, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, errors.WithDetails(
			errors.Errorf("invalid log level '%s'", s),
			"supported", supportedLevels(),
		)
	}
	return level, nil
}

func supportedLevels() string {
	names := make([]string, 0, len(NpmLevels))
	for name := range NpmLevels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return NpmLevels[names[i]] < NpmLevels[names[j]] })
	return strings.Join(names, ", ")
}
