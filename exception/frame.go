package exception

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var frameRegexp = regexp.MustCompile(`^( *)at (.*)\((.*)\)`)

// Frame is one parsed "at <function> (<file>)" trace line.
type Frame struct {
	Indent   string
	Function string
	File     string
	// Own is set once File has been rewritten relative to a base path.
	Own bool
}

// ParseFrame parses line. It returns false for lines that are not frames.
func ParseFrame(line string) (Frame, bool) {
	m := frameRegexp.FindStringSubmatch(line)
	if m == nil {
		return Frame{}, false
	}
	return Frame{Indent: m[1], Function: m[2], File: m[3]}, true
}

// relativize marks f as own code if its file starts with basePath.
// The test is a plain string prefix, paths are not normalized.
func (f *Frame) relativize(basePath string) bool {
	if basePath == "" || !strings.HasPrefix(f.File, basePath) {
		return false
	}
	f.File = "." + f.File[len(basePath):]
	f.Own = true
	return true
}

func (f Frame) String() string {
	return f.Indent + "at " + f.Function + "(" + f.File + ")"
}

// Error is an error carrying an already rendered trace, for example one
// decoded from another process's log output.
type Error struct {
	Message string
	Trace   string
}

func (e *Error) Error() string {
	return e.Message
}

// Stack returns the rendered trace, header included.
func (e *Error) Stack() string {
	return e.Trace
}

type stacker interface {
	Stack() string
}

type stackTracer interface {
	StackTrace() []uintptr
}

// Text returns the raw trace text of v.
//
// Errors recording program counters (gitlab.com/tozd/go/errors does) are
// rendered one "    at <function> (<file>:<line>)" line per frame below the
// error message, so the same frame parser applies to Go and foreign traces.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case stacker:
		if s := val.Stack(); s != "" {
			return s
		}
	}

	if err, ok := v.(error); ok {
		if st, ok := err.(stackTracer); ok {
			if pcs := st.StackTrace(); len(pcs) > 0 {
				return renderStack(err.Error(), pcs)
			}
		}
		return err.Error()
	}

	return fmt.Sprint(v)
}

func renderStack(message string, pcs []uintptr) string {
	var b strings.Builder
	b.WriteString(message)

	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" || frame.File != "" {
			fmt.Fprintf(&b, "\n    at %s (%s:%d)", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}

	return b.String()
}
