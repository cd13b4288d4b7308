package adapter

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mattn/go-isatty"
)

// ConsoleProgress writes aggregation progress to a stream. On a terminal the
// percentage is redrawn in place; otherwise a line is written every 10%.
type ConsoleProgress struct {
	out         io.Writer
	interactive bool
	lastStep    int
	last        float64
}

func NewConsoleProgress(out io.Writer) *ConsoleProgress {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsoleProgress{out: out, interactive: interactive, lastStep: -1}
}

// Report matches service.ProgressFunc.
func (p *ConsoleProgress) Report(percent float64) {
	p.last = percent
	if p.interactive {
		fmt.Fprintf(p.out, "\r%.2f%%", percent)
		return
	}

	step := int(math.Floor(percent / 10))
	if step == p.lastStep {
		return
	}
	p.lastStep = step
	fmt.Fprintf(p.out, "%.2f%%\n", percent)
}

// Done ends the progress line with a status label.
func (p *ConsoleProgress) Done(label string) {
	if p.interactive {
		fmt.Fprintf(p.out, "\r%.2f%%, %s\n", p.last, label)
		return
	}
	fmt.Fprintln(p.out, label)
}
