package data

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"astroscope/pkg/api"
	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
	"astroscope/pkg/store"
)

// ChartManager requests chart artifacts from the backend for the current
// selection and keeps the most recent result. The selection cardinality is
// checked before any request goes out; a wrong count never reaches the
// backend.
type ChartManager struct {
	client           *api.Client
	selectionManager *SelectionManager
	eventManager     *event.EventManager
	latest           *model.ChartResult
	mu               sync.RWMutex
	logger           *log.Logger
}

// NewChartManager creates a new ChartManager instance.
func NewChartManager(client *api.Client, selectionManager *SelectionManager, eventManager *event.EventManager, logger *log.Logger) *ChartManager {
	return &ChartManager{
		client:           client,
		selectionManager: selectionManager,
		eventManager:     eventManager,
		logger:           logger,
	}
}

// ChartGenerate builds the payload from the current selection and retrieves
// the chart artifact. The result replaces any previously held one.
func (cm *ChartManager) ChartGenerate(ctx context.Context, chartType model.ChartType) (model.ChartResult, error) {
	people := cm.selectionManager.SelectionList()
	required := chartType.SelectionCount()
	if len(people) != required {
		return model.ChartResult{}, fmt.Errorf("%s chart requires exactly %d selected person(s), have %d", chartType, required, len(people))
	}

	result, err := cm.client.ChartGenerate(ctx, chartType, people)
	if err != nil {
		cm.logger.Error(ctx, "Chart request failed", log.Fields{"type": chartType, "error": err})
		return model.ChartResult{}, err
	}

	cm.mu.Lock()
	cm.latest = &result
	cm.mu.Unlock()

	cm.eventManager.Publish(event.Event{Type: event.ChartGenerated, Data: result})
	cm.logger.Info(ctx, "Chart retrieved", log.Fields{"type": chartType, "kind": result.Kind, "bytes": len(result.Content)})
	return result, nil
}

// ChartLatest returns the most recently retrieved chart artifact.
func (cm *ChartManager) ChartLatest() (model.ChartResult, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.latest == nil {
		return model.ChartResult{}, false
	}
	return *cm.latest, true
}

// ChartSave writes the most recent chart artifact to a file as-is.
func (cm *ChartManager) ChartSave(ctx context.Context, filename string) error {
	result, found := cm.ChartLatest()
	if !found {
		return errors.New("no chart has been generated yet")
	}

	if err := store.ResultExport(result, filename); err != nil {
		cm.logger.Error(ctx, "Chart save failed", log.Fields{"filename": filename, "error": err})
		return err
	}
	cm.logger.Info(ctx, "Chart saved", log.Fields{"filename": filename, "type": result.Type})
	return nil
}
