package tui

import (
	"fmt"
	"io"
)

// ProgressDisplay reports the steps of a long-running command, one line each.
type ProgressDisplay struct {
	out io.Writer
}

// NewProgressDisplay writes progress lines to out, typically os.Stderr so
// that results on stdout stay machine-readable.
func NewProgressDisplay(out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{out: out}
}

func (p *ProgressDisplay) Start(message string) {
	fmt.Fprintln(p.out, SpinnerStyle.Render(SymbolSpinner)+" "+message)
}

func (p *ProgressDisplay) Success(message string) {
	fmt.Fprintln(p.out, SuccessStyle.Render(SymbolCheck+" "+message))
}

func (p *ProgressDisplay) Error(message string) {
	fmt.Fprintln(p.out, ErrorStyle.Render(SymbolCross+" "+message))
}
