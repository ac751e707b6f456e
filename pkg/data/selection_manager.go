package data

import (
	"context"
	"errors"
	"sync"

	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
	"astroscope/pkg/store"
)

// SelectionManager holds the ordered set of selected person ids. Toggling a
// selected id deselects it, so toggling twice is always a no-op. Selection
// order matters: pair charts send the first selected person as person1.
type SelectionManager struct {
	personStore  store.PersonStore
	eventManager *event.EventManager
	selected     []string
	mu           sync.RWMutex
	logger       *log.Logger
}

// NewSelectionManager creates a new SelectionManager instance.
func NewSelectionManager(personStore store.PersonStore, eventManager *event.EventManager, logger *log.Logger) *SelectionManager {
	return &SelectionManager{
		personStore:  personStore,
		eventManager: eventManager,
		logger:       logger,
	}
}

// SelectionToggle flips the selection state of one person. The id must exist
// in the store. Returns true when the person ends up selected.
func (sm *SelectionManager) SelectionToggle(id string) (bool, error) {
	if _, found := sm.personStore.PersonGet(id); !found {
		return false, errors.New("person not found: " + id)
	}

	sm.mu.Lock()
	selected := true
	if i := sm.indexOf(id); i >= 0 {
		sm.selected = append(sm.selected[:i], sm.selected[i+1:]...)
		selected = false
	} else {
		sm.selected = append(sm.selected, id)
	}
	ids := sm.idsLocked()
	sm.mu.Unlock()

	sm.eventManager.Publish(event.Event{Type: event.SelectionChanged, Data: ids})
	sm.logger.Debug(context.Background(), "Selection toggled", log.Fields{"id": id, "selected": selected, "count": len(ids)})
	return selected, nil
}

// SelectionClear empties the selection set.
func (sm *SelectionManager) SelectionClear() {
	sm.mu.Lock()
	if len(sm.selected) == 0 {
		sm.mu.Unlock()
		return
	}
	sm.selected = nil
	sm.mu.Unlock()

	sm.eventManager.Publish(event.Event{Type: event.SelectionChanged, Data: []string{}})
}

// SelectionContains reports whether a person is currently selected.
func (sm *SelectionManager) SelectionContains(id string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.indexOf(id) >= 0
}

// SelectionIDs returns the selected ids in selection order.
func (sm *SelectionManager) SelectionIDs() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.idsLocked()
}

// SelectionCount returns the number of selected persons.
func (sm *SelectionManager) SelectionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.selected)
}

// SelectionList resolves the selection to person records in selection order.
// Ids whose records have vanished from the store are skipped.
func (sm *SelectionManager) SelectionList() []model.Person {
	ids := sm.SelectionIDs()

	people := make([]model.Person, 0, len(ids))
	for _, id := range ids {
		if person, found := sm.personStore.PersonGet(id); found {
			people = append(people, person)
		}
	}
	return people
}

// handlePersonDeleted drops a deleted person from the selection set.
func (sm *SelectionManager) handlePersonDeleted(e event.Event) {
	id, ok := e.Data.(string)
	if !ok {
		return
	}

	sm.mu.Lock()
	i := sm.indexOf(id)
	if i < 0 {
		sm.mu.Unlock()
		return
	}
	sm.selected = append(sm.selected[:i], sm.selected[i+1:]...)
	ids := sm.idsLocked()
	sm.mu.Unlock()

	sm.eventManager.Publish(event.Event{Type: event.SelectionChanged, Data: ids})
	sm.logger.Debug(context.Background(), "Deleted person removed from selection", log.Fields{"id": id})
}

// indexOf returns the position of id in the selection, or -1. Callers hold
// the lock.
func (sm *SelectionManager) indexOf(id string) int {
	for i, selected := range sm.selected {
		if selected == id {
			return i
		}
	}
	return -1
}

// idsLocked copies the selection. Callers hold the lock.
func (sm *SelectionManager) idsLocked() []string {
	ids := make([]string, len(sm.selected))
	copy(ids, sm.selected)
	return ids
}
