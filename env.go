package debugformat

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTerminalWidth is used when neither an override nor a terminal is available.
const defaultTerminalWidth = 80

// Environment provides the ambient inputs of the formatter.
type Environment interface {
	Now() time.Time
	// ProcessName is the program's invocation name without directory or extension.
	ProcessName() string
	PID() int
	// TerminalWidth returns the column count of the output terminal, or 0 if unknown.
	TerminalWidth() int
}

// SystemEnvironment reads the clock, os.Args, the process id and the size of
// the terminal attached to Output.
type SystemEnvironment struct {
	// Output is the file whose terminal size is queried. Defaults to os.Stdout.
	Output *os.File
	// Width, when positive, is reported instead of querying Output.
	Width int
}

func (SystemEnvironment) Now() time.Time {
	return time.Now()
}

func (SystemEnvironment) ProcessName() string {
	if len(os.Args) == 0 {
		return ""
	}
	return invocationName(os.Args[0])
}

func (SystemEnvironment) PID() int {
	return os.Getpid()
}

func (e SystemEnvironment) TerminalWidth() int {
	if e.Width > 0 {
		return e.Width
	}
	out := e.Output
	if out == nil {
		out = os.Stdout
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func invocationName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isTerminal checks if f is attached to a terminal that supports colors
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) || strings.Contains(os.Getenv("TERM"), "color")
}
