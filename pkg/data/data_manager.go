// Package data wires the in-memory store, the backend client, and the
// selection set into the managers the session layer calls into.
package data

import (
	"astroscope/pkg/api"
	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/store"
)

// DataManager is the central struct that coordinates person records, the
// selection set, and chart retrieval.
type DataManager struct {
	PersonManager    *PersonManager
	SelectionManager *SelectionManager
	ChartManager     *ChartManager
	Logger           *log.Logger
}

// NewDataManager creates the managers and subscribes the selection set to
// deletion events so a deleted person never lingers in a selection.
func NewDataManager(personStore store.PersonStore, client *api.Client, eventManager *event.EventManager, logger *log.Logger) *DataManager {
	selectionManager := NewSelectionManager(personStore, eventManager, logger)

	dm := &DataManager{
		PersonManager:    NewPersonManager(personStore, client, eventManager, logger),
		SelectionManager: selectionManager,
		ChartManager:     NewChartManager(client, selectionManager, eventManager, logger),
		Logger:           logger,
	}

	eventManager.Subscribe(event.PersonDeleted, selectionManager.handlePersonDeleted)
	return dm
}
