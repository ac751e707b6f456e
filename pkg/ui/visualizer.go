// Package ui renders command results for the terminal.
package ui

import (
	"fmt"
	"io"
)

type Visualizer struct {
	writer   io.Writer
	useColor bool
}

func NewVisualizer(w io.Writer, useColor bool) *Visualizer {
	return &Visualizer{
		writer:   w,
		useColor: useColor,
	}
}

func (v *Visualizer) Print(message string) {
	fmt.Fprint(v.writer, message)
}

func (v *Visualizer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(v.writer, format, args...)
}

func (v *Visualizer) Println(message string) {
	fmt.Fprintln(v.writer, message)
}

func (v *Visualizer) PrintColored(message string, color Color) {
	if v.useColor {
		fmt.Fprintf(v.writer, "%s%s%s", color, message, ColorDefault)
	} else {
		fmt.Fprint(v.writer, message)
	}
}
