// Package forms owns the add/edit form state machine. All form state lives in
// one explicit struct and is mutated only through the named transitions
// (open-for-create, open-for-edit, field edit, submit build, close), which
// keeps the create/edit lifecycle auditable and testable.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"astroscope/pkg/api"
	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
)

// Mode is the current form mode.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

// String returns the string representation of the form mode.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// editZoom is the zoom level used when recentering on a known location,
// matching the geocode recenter behavior.
const editZoom = 10

// State is the serializable form field state.
type State struct {
	Mode      Mode
	EditingID string
	Name      string
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	City      string
	Lat       float64
	Lng       float64
	TzStr     string
}

// Geocoder is the one-shot place lookup the controller fires on city edits.
type Geocoder interface {
	Search(ctx context.Context, query string) (model.Coordinates, bool)
}

// Controller orchestrates the form state, the map picker, and the geocode
// client.
type Controller struct {
	state           State
	picker          *mappicker.Picker
	geocoder        Geocoder
	eventManager    *event.EventManager
	defaultTimezone string
	mu              sync.Mutex
	logger          *log.Logger
}

// NewController creates a form controller. Map clicks flow back into the form
// state through the picker's selection callback.
func NewController(picker *mappicker.Picker, geocoder Geocoder, eventManager *event.EventManager, defaultTimezone string, logger *log.Logger) *Controller {
	c := &Controller{
		picker:          picker,
		geocoder:        geocoder,
		eventManager:    eventManager,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
	picker.OnSelect(c.handleMapSelect)
	return c
}

// OpenForCreate resets the form to defaults and opens it in create mode. The
// map view is initialized lazily on the first open and reused afterwards; no
// marker is placed for a new record.
func (c *Controller) OpenForCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = State{
		Mode:  ModeCreate,
		TzStr: c.defaultTimezone,
	}
	c.picker.Open()
	c.picker.Reset()

	c.logger.Info(context.Background(), "Form opened for create", nil)
}

// OpenForEdit populates the form from an existing person, re-deriving the
// separate date and time parts from the stored composite strings, places the
// marker at the stored coordinates, and recenters the view there.
func (c *Controller) OpenForEdit(person model.Person) {
	c.mu.Lock()
	defer c.mu.Unlock()

	year, month, day := api.SplitDate(person.Birthdate)
	hour, minute := api.SplitTime(person.Birthtime)

	c.state = State{
		Mode:      ModeEdit,
		EditingID: person.ID,
		Name:      person.Name,
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      hour,
		Minute:    minute,
		City:      person.City,
		Lat:       person.Lat,
		Lng:       person.Lng,
		TzStr:     person.TzStr,
	}
	c.picker.Open()
	c.picker.Recenter(model.Coordinates{Lat: person.Lat, Lng: person.Lng}, editZoom)

	c.logger.Info(context.Background(), "Form opened for edit", log.Fields{"id": person.ID})
}

// SetField applies a single field edit to the open form. Editing the city
// also fires a geocode lookup; the lookup is fire-and-forget and unsequenced,
// so a slow response can overwrite a newer manual marker (a known race that
// is deliberately preserved).
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == ModeClosed {
		return errors.New("no form is open")
	}

	switch field {
	case "name":
		c.state.Name = value
	case "city":
		c.state.City = value
		go c.searchCity(value)
	case "birthdate":
		c.state.Year, c.state.Month, c.state.Day = api.SplitDate(value)
	case "birthtime":
		c.state.Hour, c.state.Minute = api.SplitTime(value)
	case "tz":
		c.state.TzStr = value
	case "lat":
		lat, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		c.state.Lat = lat
	case "lng":
		lng, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}
		c.state.Lng = lng
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	c.logger.Debug(context.Background(), "Form field set", log.Fields{"field": field})
	return nil
}

// searchCity runs the geocode lookup and applies a successful result. No
// result and transport failures leave the current coordinates untouched.
func (c *Controller) searchCity(query string) {
	coords, found := c.geocoder.Search(context.Background(), query)
	if !found {
		return
	}
	c.applyGeocode(coords)
}

// applyGeocode records resolved coordinates in the form state and mirrors the
// click behavior on the map: recenter and move the marker.
func (c *Controller) applyGeocode(coords model.Coordinates) {
	c.mu.Lock()
	if c.state.Mode == ModeClosed {
		c.mu.Unlock()
		return
	}
	c.state.Lat = coords.Lat
	c.state.Lng = coords.Lng
	c.mu.Unlock()

	c.picker.Recenter(coords, editZoom)
	c.eventManager.Publish(event.Event{Type: event.GeocodeResolved, Data: coords})
}

// handleMapSelect records a map click as the current birthplace coordinates.
func (c *Controller) handleMapSelect(coords model.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == ModeClosed {
		return
	}
	c.state.Lat = coords.Lat
	c.state.Lng = coords.Lng
}

// BuildPerson validates the form and builds the person record for submission.
// Both coordinates must have been set by a map click or a geocode result. The
// timezone is overridden with the locally resolved zone at submit time, the
// way the original default gives way to the environment's zone.
func (c *Controller) BuildPerson() (model.Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == ModeClosed {
		return model.Person{}, errors.New("no form is open")
	}
	if c.state.Lat == 0 || c.state.Lng == 0 {
		return model.Person{}, errors.New("birthplace coordinates are required: set them with a map click or a city lookup")
	}
	if c.state.Name == "" {
		return model.Person{}, errors.New("name is required")
	}

	return model.Person{
		ID:        c.state.EditingID,
		Name:      c.state.Name,
		Birthdate: api.ComposeDate(c.state.Year, c.state.Month, c.state.Day),
		Birthtime: api.ComposeTime(c.state.Hour, c.state.Minute),
		City:      c.state.City,
		Lat:       c.state.Lat,
		Lng:       c.state.Lng,
		TzStr:     ResolveLocalZone(c.defaultTimezone),
	}, nil
}

// Close discards in-progress edits, clears any placed marker, and closes the
// form. Repeated closes are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == ModeClosed {
		return
	}
	c.state = State{}
	c.picker.Reset()

	c.logger.Info(context.Background(), "Form closed", nil)
}

// Snapshot returns a copy of the current form state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the current form mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Mode
}
