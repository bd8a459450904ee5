package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes the tool's prefixed status lines. The colored prefix
// keeps our lines recognizable next to interleaved cmake and make output.
type Logger struct {
	Out io.Writer
}

// New returns a Logger writing to out, defaulting to stdout.
func New(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{Out: out}
}

func (l *Logger) Infof(format string, args ...any) {
	l.tagged(color.FgBlue, format, args...)
}

func (l *Logger) Successf(format string, args ...any) {
	l.tagged(color.FgGreen, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.tagged(color.FgYellow, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.tagged(color.FgRed, format, args...)
}

func (l *Logger) tagged(attr color.Attribute, format string, args ...any) {
	tag := color.New(attr).Sprint("[LinX OS]")
	fmt.Fprintf(l.Out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
