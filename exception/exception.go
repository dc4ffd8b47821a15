// Package exception formats stack traces for console output.
//
// Frames living under a configured base path are considered "own" code: their
// paths are rewritten relative to the base path and, when colors are enabled,
// the whole frame line is rendered in bold. The trace can be cut to a fixed
// number of lines or automatically right after the last own frame.
package exception

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"
)

// TruncatedMarker is appended to a trace whenever lines were dropped.
const TruncatedMarker = "    [truncated]"

// autoWindow is the number of trace lines kept by Auto when no own frame was found.
const autoWindow = 5

// MaxLines limits the number of trace lines. The zero value means unlimited.
type MaxLines struct {
	limit   int
	limited bool
	auto    bool
}

// Auto truncates the trace after the last frame under the base path.
var Auto = MaxLines{auto: true}

// Limit keeps at most n trace lines. Negative values are treated as zero.
func Limit(n int) MaxLines {
	if n < 0 {
		n = 0
	}
	return MaxLines{limit: n, limited: true}
}

// IsAuto reports whether m is Auto.
func (m MaxLines) IsAuto() bool {
	return m.auto
}

// Limit returns the fixed limit and whether one is set.
func (m MaxLines) Limit() (int, bool) {
	return m.limit, m.limited
}

func (m MaxLines) String() string {
	switch {
	case m.auto:
		return "auto"
	case m.limited:
		return strconv.Itoa(m.limit)
	default:
		return ""
	}
}

// ParseMaxLines parses "", "auto" or a non-negative integer.
func ParseMaxLines(s string) (MaxLines, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return MaxLines{}, nil
	case "auto":
		return Auto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return MaxLines{}, errors.WithDetails(
			errors.Errorf(`invalid max lines %q: expected "auto" or a non-negative integer`, s),
			"value", s,
		)
	}
	return Limit(n), nil
}

// Options control Format.
type Options struct {
	// NoColor disables bold own frames.
	NoColor bool
	// BasePath decides which frames are own code. Empty means no frame is.
	BasePath string
	MaxLines MaxLines
}

var bold = func() *color.Color {
	c := color.New(color.Bold)
	c.EnableColor()
	return c
}()

// Bold renders s the way own frames are highlighted.
func Bold(s string) string {
	return bold.Sprint(s)
}

// Format renders v (a string, an error or anything printable) as a trace.
// Header lines, everything before the first frame, are never truncated.
func Format(v any, opts Options) string {
	lines := strings.Split(Text(v), "\n")

	var header, trace []string
	readingHeader := true
	lastOwn := -1

	for _, line := range lines {
		frame, ok := ParseFrame(line)
		if !ok && readingHeader {
			header = append(header, line)
			continue
		}
		readingHeader = false

		if !ok {
			trace = append(trace, line)
			continue
		}

		if frame.relativize(opts.BasePath) {
			lastOwn = len(trace)
		}

		traceLine := frame.String()
		if frame.Own && !opts.NoColor {
			traceLine = Bold(traceLine)
		}
		trace = append(trace, traceLine)
	}

	trace = truncate(trace, lastOwn, opts)

	return strings.Join(append(header, trace...), "\n")
}

func truncate(trace []string, lastOwn int, opts Options) []string {
	cut := len(trace)

	switch {
	case opts.MaxLines.IsAuto() && opts.BasePath != "":
		if lastOwn == -1 {
			cut = min(cut, autoWindow)
		} else {
			cut = lastOwn + 1
		}
	case opts.MaxLines.limited:
		cut = min(cut, opts.MaxLines.limit)
	}

	if cut >= len(trace) {
		return trace
	}
	return append(trace[:cut:cut], TruncatedMarker)
}
