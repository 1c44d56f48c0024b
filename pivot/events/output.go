package events

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}

	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
	}
}

// Handle implements the Handler signature - prints events as they occur.
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case ScanBegin:
		return fmt.Sprintf("%s Scanning %v", latency, event.Data["source"])

	case ScanCompleted:
		return fmt.Sprintf("%s %s Scan done: %s examined, %s kept into %s.",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("rows", event.Data["rows.scanned"].(int64)),
			f.colorizeCount("rows", event.Data["rows.folded"].(int64)),
			f.colorizeCount("groups", int64(event.Data["groups"].(int))))

	case PivotBegin:
		return fmt.Sprintf("%s Pivoting %s in memory",
			latency,
			f.colorizeCount("rows", int64(event.Data["rows.total"].(int))))

	case PivotCompleted:
		return fmt.Sprintf("%s %s Pivot done: %s kept into %s.",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("rows", event.Data["rows.folded"].(int64)),
			f.colorizeCount("groups", int64(event.Data["groups"].(int))))

	case EmitCompleted:
		return fmt.Sprintf("%s Wrote %s to %v",
			latency,
			f.colorizeCount("groups", int64(event.Data["groups"].(int))),
			event.Data["path"])

	case ErrorAggregation, ErrorEmit:
		return fmt.Sprintf("%s %s %v",
			latency,
			f.colorize("✗", color.FgRed),
			event.Data["error"])
	}

	return ""
}

func (f *OutputFormatter) formatLatency(d time.Duration) string {
	// Use microseconds for sub-millisecond durations
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)

	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, colored by label type.
func (f *OutputFormatter) colorizeCount(label string, count int64) string {
	text := fmt.Sprintf("%d %s", count, label)

	if !f.useColor {
		return text
	}

	switch label {
	case "rows":
		return color.MagentaString(text)
	case "groups":
		return color.CyanString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a handler that prints formatted events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return formatter.Handle
}

// isTerminal checks if the file descriptor is a terminal.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2) // stdout or stderr
}
