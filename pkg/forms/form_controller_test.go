package forms

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelError)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

// fakeGeocoder returns a fixed result for every query.
type fakeGeocoder struct {
	mu      sync.Mutex
	coords  model.Coordinates
	found   bool
	queries []string
}

func (g *fakeGeocoder) Search(_ context.Context, query string) (model.Coordinates, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queries = append(g.queries, query)
	return g.coords, g.found
}

type fixture struct {
	controller   *Controller
	mapView      *mappicker.TerminalMap
	geocoder     *fakeGeocoder
	eventManager *event.EventManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := newTestLogger(t)

	mapView := mappicker.NewTerminalMap(model.Coordinates{Lat: 35.6892, Lng: 51.389}, 5)
	picker := mappicker.NewPicker(func() mappicker.MapView { return mapView }, 5, logger)
	geocoder := &fakeGeocoder{}
	eventManager := event.NewEventManager(logger)

	return &fixture{
		controller:   NewController(picker, geocoder, eventManager, "Asia/Tehran", logger),
		mapView:      mapView,
		geocoder:     geocoder,
		eventManager: eventManager,
	}
}

func TestOpenForCreateDefaults(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForCreate()

	state := f.controller.Snapshot()
	require.Equal(t, ModeCreate, state.Mode)
	require.Empty(t, state.EditingID)
	require.Equal(t, "Asia/Tehran", state.TzStr)
	require.Zero(t, state.Lat)
	require.Zero(t, state.Lng)

	_, placed := f.mapView.Marker()
	require.False(t, placed)
}

func TestOpenForEditPrefillsFields(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForEdit(model.Person{
		ID:        "7",
		Name:      "Alice",
		Birthdate: "1990-03-14",
		Birthtime: "08:30",
		City:      "Paris",
		Lat:       48.8566,
		Lng:       2.3522,
		TzStr:     "Europe/Paris",
	})

	state := f.controller.Snapshot()
	require.Equal(t, ModeEdit, state.Mode)
	require.Equal(t, "7", state.EditingID)
	require.Equal(t, 1990, state.Year)
	require.Equal(t, 3, state.Month)
	require.Equal(t, 14, state.Day)
	require.Equal(t, 8, state.Hour)
	require.Equal(t, 30, state.Minute)

	marker, placed := f.mapView.Marker()
	require.True(t, placed)
	require.Equal(t, 48.8566, marker.Lat)

	center, zoom := f.mapView.Center()
	require.Equal(t, 48.8566, center.Lat)
	require.Equal(t, 10, zoom)
}

func TestMapClickSetsCoordinates(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForCreate()

	f.mapView.Click(model.Coordinates{Lat: 40.7, Lng: -74.0})

	state := f.controller.Snapshot()
	require.Equal(t, 40.7, state.Lat)
	require.Equal(t, -74.0, state.Lng)

	// One click, one marker
	marker, placed := f.mapView.Marker()
	require.True(t, placed)
	require.Equal(t, 40.7, marker.Lat)

	// A second click moves the marker rather than adding another
	f.mapView.Click(model.Coordinates{Lat: 51.5, Lng: -0.12})
	marker, placed = f.mapView.Marker()
	require.True(t, placed)
	require.Equal(t, 51.5, marker.Lat)
}

func TestCityEditResolvesCoordinates(t *testing.T) {
	f := newFixture(t)
	f.geocoder.coords = model.Coordinates{Lat: 48.8566, Lng: 2.3522}
	f.geocoder.found = true

	var resolved []model.Coordinates
	var mu sync.Mutex
	f.eventManager.Subscribe(event.GeocodeResolved, func(e event.Event) {
		mu.Lock()
		resolved = append(resolved, e.Data.(model.Coordinates))
		mu.Unlock()
	})

	f.controller.OpenForCreate()
	require.NoError(t, f.controller.SetField("city", "Paris"))

	require.Eventually(t, func() bool {
		state := f.controller.Snapshot()
		return state.Lat == 48.8566 && state.Lng == 2.3522
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(resolved) == 1
	}, time.Second, 5*time.Millisecond)

	marker, placed := f.mapView.Marker()
	require.True(t, placed)
	require.Equal(t, 48.8566, marker.Lat)
}

func TestCityEditWithoutResultLeavesCoordinates(t *testing.T) {
	f := newFixture(t)
	f.geocoder.found = false

	f.controller.OpenForCreate()
	f.mapView.Click(model.Coordinates{Lat: 1.5, Lng: 2.5})
	require.NoError(t, f.controller.SetField("city", "Atlantis"))

	// Give the lookup goroutine a moment; coordinates must not move
	time.Sleep(20 * time.Millisecond)
	state := f.controller.Snapshot()
	require.Equal(t, 1.5, state.Lat)
	require.Equal(t, 2.5, state.Lng)
}

func TestSetFieldClosedForm(t *testing.T) {
	f := newFixture(t)
	require.Error(t, f.controller.SetField("name", "Alice"))
}

func TestSetFieldUnknownField(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForCreate()
	require.Error(t, f.controller.SetField("shoe_size", "42"))
}

func TestBuildPersonRequiresCoordinates(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForCreate()
	require.NoError(t, f.controller.SetField("name", "Alice"))

	_, err := f.controller.BuildPerson()
	require.Error(t, err)
	require.Contains(t, err.Error(), "coordinates")

	// The form stays open after a rejected build
	require.Equal(t, ModeCreate, f.controller.Mode())
}

func TestBuildPersonComposesRecord(t *testing.T) {
	t.Setenv("TZ", "Europe/Paris")

	f := newFixture(t)
	f.controller.OpenForCreate()
	require.NoError(t, f.controller.SetField("name", "Alice"))
	require.NoError(t, f.controller.SetField("birthdate", "1990-03-14"))
	require.NoError(t, f.controller.SetField("birthtime", "08:30"))
	require.NoError(t, f.controller.SetField("city", "Paris"))
	f.mapView.Click(model.Coordinates{Lat: 48.8566, Lng: 2.3522})

	person, err := f.controller.BuildPerson()
	require.NoError(t, err)
	require.Empty(t, person.ID)
	require.Equal(t, "Alice", person.Name)
	require.Equal(t, "1990-03-14", person.Birthdate)
	require.Equal(t, "08:30", person.Birthtime)
	require.Equal(t, 48.8566, person.Lat)
	require.Equal(t, "Europe/Paris", person.TzStr)
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.controller.OpenForCreate()
	f.mapView.Click(model.Coordinates{Lat: 1, Lng: 2})

	f.controller.Close()
	require.Equal(t, ModeClosed, f.controller.Mode())

	_, placed := f.mapView.Marker()
	require.False(t, placed)

	// Second close is a no-op
	f.controller.Close()
	require.Equal(t, ModeClosed, f.controller.Mode())
}

func TestResolveLocalZone(t *testing.T) {
	t.Run("TZ wins", func(t *testing.T) {
		t.Setenv("TZ", "America/New_York")
		require.Equal(t, "America/New_York", ResolveLocalZone("Asia/Tehran"))
	})

	t.Run("TZ whitespace is trimmed", func(t *testing.T) {
		t.Setenv("TZ", " Europe/Berlin ")
		require.Equal(t, "Europe/Berlin", ResolveLocalZone("Asia/Tehran"))
	})
}
