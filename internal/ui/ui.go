package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/sokinpui/transplant/internal/splice"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
	FaintColor   = color.New(color.Faint)
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects status output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(c *color.Color, format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	c.Fprintf(output, format+"\n", a...)
}

func Header(format string, a ...interface{}) {
	emit(HeaderColor, format, a...)
}

func Info(format string, a ...interface{}) {
	emit(InfoColor, format, a...)
}

func Success(format string, a ...interface{}) {
	emit(SuccessColor, format, a...)
}

func Warning(format string, a ...interface{}) {
	emit(WarningColor, format, a...)
}

func Error(format string, a ...interface{}) {
	emit(ErrorColor, format, a...)
}

func Path(format string, a ...interface{}) {
	emit(PathColor, "  "+format, a...)
}

// --- Summaries ---

// StageLine renders one outcome, e.g. "excise: applied (412 bytes removed)".
func StageLine(o splice.Outcome) string {
	if !o.Applied {
		return fmt.Sprintf("%s: skipped (%s)", o.Stage, o.Reason)
	}
	switch o.Stage {
	case splice.StageExcise:
		return fmt.Sprintf("%s: applied (%d bytes removed)", o.Stage, o.Count)
	case splice.StageInsert:
		return fmt.Sprintf("%s: applied (%d bytes inserted)", o.Stage, o.Count)
	case splice.StageSubstitute:
		return fmt.Sprintf("%s: applied (%d replacement(s))", o.Stage, o.Count)
	default:
		return fmt.Sprintf("%s: applied", o.Stage)
	}
}

// PrintStageSummary prints one line per pipeline stage.
func PrintStageSummary(path string, outcomes []splice.Outcome) {
	Header("\n--- Transform Summary ---")
	Path("%s", path)

	for _, o := range outcomes {
		switch {
		case o.Applied:
			Success("  %s", StageLine(o))
		case o.Reason == splice.ReasonNotConfigured:
			emit(FaintColor, "  %s", StageLine(o))
		default:
			Warning("  %s", StageLine(o))
		}
	}
}
