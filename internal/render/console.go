package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	red   = "\033[1;31m"
	cyan  = "\033[1;36m"
	green = "\033[1;32m"
	reset = "\033[0m"
)

// Console writes operator-facing text, optionally colored.
type Console struct {
	w     io.Writer
	color bool
}

// NewConsole colors output only when f is a terminal and noColor is not
// set. On Windows the writer translates ANSI sequences.
func NewConsole(f *os.File, noColor bool) *Console {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	if noColor || !tty {
		return &Console{w: colorable.NewNonColorable(f)}
	}
	return &Console{w: colorable.NewColorable(f), color: true}
}

// NewPlainConsole writes uncolored text to w.
func NewPlainConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Writer() io.Writer {
	return c.w
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.w, args...)
}

func (c *Console) Errorf(format string, args ...any) {
	c.colored(red, format, args...)
}

func (c *Console) Successf(format string, args ...any) {
	c.colored(green, format, args...)
}

func (c *Console) Highlightf(format string, args ...any) {
	c.colored(cyan, format, args...)
}

func (c *Console) colored(code, format string, args ...any) {
	if !c.color {
		fmt.Fprintf(c.w, format, args...)
		return
	}
	fmt.Fprint(c.w, code)
	fmt.Fprintf(c.w, format, args...)
	fmt.Fprint(c.w, reset)
}
