package mappicker

import (
	"sync"

	"astroscope/pkg/model"
)

// TerminalMap is the default MapView implementation. There is no tile
// renderer in a terminal session; the view tracks center, zoom, and the
// single marker, and turns simulated clicks (coordinates typed by the user)
// into click events.
type TerminalMap struct {
	center  model.Coordinates
	zoom    int
	marker  *model.Coordinates
	onClick func(model.Coordinates)
	mu      sync.Mutex
}

// NewTerminalMap creates a terminal map view with the given initial center
// and zoom.
func NewTerminalMap(center model.Coordinates, zoom int) *TerminalMap {
	return &TerminalMap{center: center, zoom: zoom}
}

// SetView recenters the view.
func (m *TerminalMap) SetView(center model.Coordinates, zoom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.zoom = zoom
}

// PlaceMarker puts the marker at the given coordinates.
func (m *TerminalMap) PlaceMarker(coords model.Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = &coords
}

// ClearMarker removes the marker if present.
func (m *TerminalMap) ClearMarker() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = nil
}

// OnClick registers the click handler.
func (m *TerminalMap) OnClick(handler func(model.Coordinates)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = handler
}

// Click simulates a user click at the given coordinates.
func (m *TerminalMap) Click(coords model.Coordinates) {
	m.mu.Lock()
	handler := m.onClick
	m.mu.Unlock()

	if handler != nil {
		handler(coords)
	}
}

// Center returns the current view center and zoom.
func (m *TerminalMap) Center() (model.Coordinates, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.center, m.zoom
}

// Marker returns the marker coordinates, if placed.
func (m *TerminalMap) Marker() (model.Coordinates, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.marker == nil {
		return model.Coordinates{}, false
	}
	return *m.marker, true
}
