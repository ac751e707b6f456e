package ui

import (
	"io"
	"strings"

	"astroscope/pkg/model"
)

// ChartUI handles the rendering of chart artifacts.
type ChartUI struct {
	visualizer *Visualizer
}

func NewChartUI(w io.Writer, useColor bool) *ChartUI {
	return &ChartUI{
		visualizer: NewVisualizer(w, useColor),
	}
}

// ChartShow renders a chart artifact. JSON artifacts print in full (they
// arrive already indented); SVG artifacts print a summary since a terminal
// cannot draw them, with a hint to save them to a file.
func (cui *ChartUI) ChartShow(result model.ChartResult) {
	cui.visualizer.PrintColored("Chart ("+string(result.Type)+"):\n", ColorLightBlue)

	if result.Kind == model.ChartKindJSON {
		cui.visualizer.Println(result.Content)
		return
	}

	firstLine := result.Content
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	cui.visualizer.Printf("SVG artifact, %d bytes\n", len(result.Content))
	cui.visualizer.PrintColored(firstLine+"\n", ColorGray)
	cui.visualizer.Println("Use 'chart save <filename>' to write it to a file.")
}
