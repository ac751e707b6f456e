package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// chartEndpoints maps each chart type to its fixed backend path.
var chartEndpoints = map[model.ChartType]string{
	model.ChartNatal:     "/astro/chart-json",
	model.ChartTransit:   "/astro/chart-svg",
	model.ChartReport:    "/astro/report",
	model.ChartSynastry:  "/astro/synastry",
	model.ChartComposite: "/astro/composite",
}

// ChartGenerate requests a chart artifact for the given people. The caller
// must have validated the selection cardinality already; this method only
// shapes the payload, dispatches, and classifies the response by its declared
// content type: structured data is parsed and pretty-printed, anything else
// is treated as a vector-image document and returned verbatim.
func (c *Client) ChartGenerate(ctx context.Context, chartType model.ChartType, people []model.Person) (model.ChartResult, error) {
	path, ok := chartEndpoints[chartType]
	if !ok {
		return model.ChartResult{}, fmt.Errorf("unknown chart type: %s", chartType)
	}

	var payload interface{}
	switch chartType.SelectionCount() {
	case 2:
		if len(people) != 2 {
			return model.ChartResult{}, fmt.Errorf("chart type %s requires 2 people, got %d", chartType, len(people))
		}
		payload = model.PairPayload{
			Person1: chartPayload(people[0]),
			Person2: chartPayload(people[1]),
		}
	default:
		if len(people) != 1 {
			return model.ChartResult{}, fmt.Errorf("chart type %s requires 1 person, got %d", chartType, len(people))
		}
		payload = chartPayload(people[0])
	}

	c.logger.Info(ctx, "Requesting chart", log.Fields{"type": chartType, "path": path})

	resp, err := c.sendJSON(ctx, http.MethodPost, path, payload)
	if err != nil {
		c.logger.Error(ctx, "Chart request failed", log.Fields{"type": chartType, "error": err})
		return model.ChartResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("backend status %d", resp.StatusCode)
		c.logger.Error(ctx, "Chart request rejected", log.Fields{"type": chartType, "status": resp.StatusCode})
		return model.ChartResult{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ChartResult{}, fmt.Errorf("failed to read chart response: %w", err)
	}

	result := model.ChartResult{Type: chartType}
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var data interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return model.ChartResult{}, fmt.Errorf("failed to parse chart data: %w", err)
		}
		pretty, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return model.ChartResult{}, fmt.Errorf("failed to format chart data: %w", err)
		}
		result.Kind = model.ChartKindJSON
		result.Content = string(pretty)
	} else {
		result.Kind = model.ChartKindSVG
		result.Content = string(body)
	}

	c.logger.Info(ctx, "Chart generated", log.Fields{"type": chartType, "kind": result.Kind, "bytes": len(result.Content)})
	return result, nil
}

// chartPayload flattens a person for the chart endpoints, which do not take
// the record id.
func chartPayload(person model.Person) model.PersonPayload {
	payload := Flatten(person)
	payload.ID = ""
	return payload
}
