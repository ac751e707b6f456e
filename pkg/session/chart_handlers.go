package session

import (
	"context"
	"errors"
	"fmt"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// handleChartNatal handles the chart natal command
func handleChartNatal(s *Session, cmd model.Command) (interface{}, error) {
	return chartGenerate(s, model.ChartNatal)
}

// handleChartTransit handles the chart transit command
func handleChartTransit(s *Session, cmd model.Command) (interface{}, error) {
	return chartGenerate(s, model.ChartTransit)
}

// handleChartReport handles the chart report command
func handleChartReport(s *Session, cmd model.Command) (interface{}, error) {
	return chartGenerate(s, model.ChartReport)
}

// handleChartSynastry handles the chart synastry command
func handleChartSynastry(s *Session, cmd model.Command) (interface{}, error) {
	return chartGenerate(s, model.ChartSynastry)
}

// handleChartComposite handles the chart composite command
func handleChartComposite(s *Session, cmd model.Command) (interface{}, error) {
	return chartGenerate(s, model.ChartComposite)
}

// chartGenerate requests one chart artifact for the current selection.
func chartGenerate(s *Session, chartType model.ChartType) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling chart command", log.Fields{"type": chartType})

	result, err := s.DataManager.ChartManager.ChartGenerate(ctx, chartType)
	if err != nil {
		s.logger.Error(ctx, "Failed to generate chart", log.Fields{"type": chartType, "error": err})
		return nil, err
	}
	return result, nil
}

// handleChartShow handles the chart show command
func handleChartShow(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling chart show command", nil)

	result, found := s.DataManager.ChartManager.ChartLatest()
	if !found {
		s.logger.Warn(ctx, "No chart available", nil)
		return nil, errors.New("no chart has been generated yet")
	}
	return result, nil
}

// handleChartSave handles the chart save command
func handleChartSave(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling chart save command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for chart save", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for chart save")
	}

	filename := cmd.Args[0]
	if err := s.DataManager.ChartManager.ChartSave(ctx, filename); err != nil {
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}
	return fmt.Sprintf("Chart saved to '%s'", filename), nil
}
