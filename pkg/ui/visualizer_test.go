package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintColoredWrapsAndResets(t *testing.T) {
	var buf bytes.Buffer
	v := NewVisualizer(&buf, true)

	v.PrintColored("failure\n", ColorRed)

	out := buf.String()
	require.Equal(t, string(ColorRed)+"failure\n"+string(ColorDefault), out)
}

func TestPrintColoredWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	v := NewVisualizer(&buf, false)

	v.PrintColored("failure\n", ColorRed)

	require.Equal(t, "failure\n", buf.String())
}

func TestPrintfAndPrintln(t *testing.T) {
	var buf bytes.Buffer
	v := NewVisualizer(&buf, true)

	v.Printf("%d records", 3)
	v.Println(" listed")

	require.Equal(t, "3 records listed\n", buf.String())
}
