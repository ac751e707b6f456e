// Package mappicker owns the interactive coordinate picker. The rest of the
// application depends only on the MapView capability interface, never on a
// concrete map implementation; the picker enforces the single-marker rule and
// the lazy lifecycle (the view is created on first open and reused for the
// rest of the session).
package mappicker

import (
	"context"
	"sync"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// MapView is the capability interface a map implementation must provide:
// recenter the view, place or clear the single marker, and deliver clicks.
type MapView interface {
	SetView(center model.Coordinates, zoom int)
	PlaceMarker(coords model.Coordinates)
	ClearMarker()
	OnClick(handler func(model.Coordinates))
}

// ViewFactory creates the underlying map view on first use.
type ViewFactory func() MapView

// Picker manages the map view lifecycle and the current marker selection.
type Picker struct {
	factory      ViewFactory
	view         MapView
	marker       *model.Coordinates
	clickHandler func(model.Coordinates)
	defaultZoom  int
	mu           sync.Mutex
	logger       *log.Logger
}

// NewPicker creates a picker. The view itself is not created until the first
// Open call.
func NewPicker(factory ViewFactory, defaultZoom int, logger *log.Logger) *Picker {
	return &Picker{
		factory:     factory,
		defaultZoom: defaultZoom,
		logger:      logger,
	}
}

// Open makes sure the view exists, wiring the click callback on first use.
// Reopening reuses the existing view instance.
func (p *Picker) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view != nil {
		return
	}

	p.logger.Info(context.Background(), "Initializing map view", nil)
	p.view = p.factory()
	p.view.OnClick(p.handleClick)
}

// OnSelect registers the callback invoked whenever the marker selection
// changes through a click.
func (p *Picker) OnSelect(handler func(model.Coordinates)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clickHandler = handler
}

// handleClick records the clicked coordinates as the current selection,
// replacing any existing marker, and notifies the registered callback.
func (p *Picker) handleClick(coords model.Coordinates) {
	p.mu.Lock()
	if p.view == nil {
		p.mu.Unlock()
		return
	}
	if p.marker != nil {
		p.view.ClearMarker()
	}
	p.view.PlaceMarker(coords)
	p.marker = &coords
	handler := p.clickHandler
	p.mu.Unlock()

	p.logger.Debug(context.Background(), "Map clicked", log.Fields{"lat": coords.Lat, "lng": coords.Lng})
	if handler != nil {
		handler(coords)
	}
}

// Recenter moves the view to the given coordinates and places the marker
// there, mirroring the click behavior. Used for geocode results and when
// opening the form in edit mode.
func (p *Picker) Recenter(coords model.Coordinates, zoom int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view == nil {
		return
	}
	if zoom <= 0 {
		zoom = p.defaultZoom
	}
	if p.marker != nil {
		p.view.ClearMarker()
	}
	p.view.PlaceMarker(coords)
	p.marker = &coords
	p.view.SetView(coords, zoom)

	p.logger.Debug(context.Background(), "Map recentered", log.Fields{"lat": coords.Lat, "lng": coords.Lng, "zoom": zoom})
}

// Reset removes the marker. Removing a marker that is already absent is a
// no-op, so repeated resets are safe.
func (p *Picker) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view == nil || p.marker == nil {
		return
	}
	p.view.ClearMarker()
	p.marker = nil
}

// Marker returns the current marker coordinates, if any.
func (p *Picker) Marker() (model.Coordinates, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.marker == nil {
		return model.Coordinates{}, false
	}
	return *p.marker, true
}

// Initialized reports whether the underlying view has been created.
func (p *Picker) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view != nil
}
