package progress

import (
	"fmt"
	"io"
)

// Reporter receives purely observational sweep progress signals: the
// total expected run count up front, one Advance per completed run, and
// Done when the sweep finishes. Implementations must not influence the
// sweep.
type Reporter interface {
	Start(total int)
	Advance()
	Done()
}

// Noop discards all progress signals.
type Noop struct{}

func (Noop) Start(int) {}

func (Noop) Advance() {}

func (Noop) Done() {}

// Printer emits one status line per completed run.
type Printer struct {
	w     io.Writer
	total int
	done  int
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Start(total int) {
	p.total = total
	p.done = 0
}

func (p *Printer) Advance() {
	p.done++
	fmt.Fprintf(p.w, "sweep run=%d/%d\n", p.done, p.total)
}

func (p *Printer) Done() {
	fmt.Fprintf(p.w, "sweep complete runs=%d\n", p.done)
}
