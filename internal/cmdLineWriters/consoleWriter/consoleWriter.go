package consolewriter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type ConsoleWriter struct {
	out    io.Writer
	errOut io.Writer
}

func NewConsoleWriter(out, errOut io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out, errOut: errOut}
}

func Default() *ConsoleWriter {
	return NewConsoleWriter(color.Output, color.Error)
}

func (w *ConsoleWriter) Out() io.Writer {
	return w.out
}

func (w *ConsoleWriter) Error(message string) {
	fmt.Fprintf(w.errOut, "%s: %s\n", color.New(color.FgRed, color.Bold).Sprint("Error"), message)
}

func (w *ConsoleWriter) Success(message string) {
	fmt.Fprintf(w.out, "%s: %s\n", color.New(color.FgGreen, color.Bold).Sprint("Success"), message)
}

func (w *ConsoleWriter) Info(message string) {
	fmt.Fprintf(w.out, "%s: %s\n", color.New(color.FgBlue, color.Bold).Sprint("Info"), message)
}

func (w *ConsoleWriter) Warning(message string) {
	fmt.Fprintf(w.out, "%s: %s\n", color.New(color.FgYellow, color.Bold).Sprint("Warning"), message)
}

func (w *ConsoleWriter) Println(a ...any) {
	fmt.Fprintln(w.out, a...)
}

func (w *ConsoleWriter) Printf(format string, a ...any) {
	fmt.Fprintf(w.out, format, a...)
}
