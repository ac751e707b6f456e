// Package model defines the data structures used throughout the Astroscope application.
package model

// ChartType identifies one of the chart artifacts the backend can produce.
// The type determines the required selection count and the endpoint path.
type ChartType string

const (
	ChartNatal     ChartType = "natal"
	ChartTransit   ChartType = "transit"
	ChartSynastry  ChartType = "synastry"
	ChartComposite ChartType = "composite"
	ChartReport    ChartType = "report"
)

// SelectionCount returns how many selected persons the chart type requires.
func (t ChartType) SelectionCount() int {
	switch t {
	case ChartSynastry, ChartComposite:
		return 2
	default:
		return 1
	}
}

// ChartKind discriminates the content of a chart result.
type ChartKind string

const (
	ChartKindJSON ChartKind = "json"
	ChartKindSVG  ChartKind = "svg"
)

// ChartResult is the most recently retrieved chart artifact. Exactly one
// exists at a time; it is overwritten on each successful chart request.
type ChartResult struct {
	Type    ChartType
	Kind    ChartKind
	Content string
}
