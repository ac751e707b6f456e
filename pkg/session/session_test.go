package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"astroscope/pkg/api"
	"astroscope/pkg/data"
	"astroscope/pkg/event"
	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
	"astroscope/pkg/store"
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

// stubGeocoder never resolves; tests drive coordinates with map clicks.
type stubGeocoder struct{}

func (stubGeocoder) Search(context.Context, string) (model.Coordinates, bool) {
	return model.Coordinates{}, false
}

type stack struct {
	session     *Session
	dataManager *data.DataManager
	forms       *forms.Controller
	mapView     *mappicker.TerminalMap
	logger      *log.Logger
}

// newTestStack wires the full application stack against a test backend.
func newTestStack(t *testing.T, handler http.Handler) *stack {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := newTestLogger(t)
	cfg := &model.Config{
		APIBaseURL:      server.URL,
		DefaultTimezone: "Asia/Tehran",
		MapCenterLat:    35.6892,
		MapCenterLng:    51.389,
		MapZoom:         5,
		HTTPTimeoutSec:  5,
	}

	eventManager := event.NewEventManager(logger)
	personStore := store.NewPersonStorage(logger)
	apiClient := api.NewClient(cfg, logger)
	mapView := mappicker.NewTerminalMap(model.Coordinates{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng}, cfg.MapZoom)
	picker := mappicker.NewPicker(func() mappicker.MapView { return mapView }, cfg.MapZoom, logger)
	dataManager := data.NewDataManager(personStore, apiClient, eventManager, logger)
	formController := forms.NewController(picker, stubGeocoder{}, eventManager, cfg.DefaultTimezone, logger)

	return &stack{
		session:     NewSession("test-session", dataManager, formController, mapView, logger),
		dataManager: dataManager,
		forms:       formController,
		mapView:     mapView,
		logger:      logger,
	}
}

func run(t *testing.T, s *stack, scope, operation string, args ...string) interface{} {
	t.Helper()
	result, err := s.session.CommandRun(model.Command{Scope: scope, Operation: operation, Args: args})
	require.NoError(t, err)
	return result
}

func TestCommandRunUnknownScope(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := s.session.CommandRun(model.Command{Scope: "planet", Operation: "list"})
	require.Error(t, err)

	_, err = s.session.CommandRun(model.Command{Scope: "person", Operation: "teleport"})
	require.Error(t, err)
}

func TestCommandValidation(t *testing.T) {
	logger := newTestLogger(t)

	tests := []struct {
		name    string
		cmd     model.Command
		wantErr bool
	}{
		{"valid person list", model.Command{Scope: "person", Operation: "list"}, false},
		{"person list with args", model.Command{Scope: "person", Operation: "list", Args: []string{"x"}}, true},
		{"empty scope", model.Command{}, true},
		{"unknown scope", model.Command{Scope: "nope", Operation: "x"}, true},
		{"form set too few args", model.Command{Scope: "form", Operation: "set", Args: []string{"name"}}, true},
		{"form set joined value", model.Command{Scope: "form", Operation: "set", Args: []string{"name", "Alice", "Smith"}}, false},
		{"map click wrong arity", model.Command{Scope: "map", Operation: "click", Args: []string{"1.0"}}, true},
		{"chart save needs filename", model.Command{Scope: "chart", Operation: "save"}, true},
		{"system exit", model.Command{Scope: "system", Operation: "exit"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(tt.cmd, logger)
			err := cmd.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFormLifecycleEndToEnd(t *testing.T) {
	var created model.PersonPayload
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/users/" {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	run(t, s, "form", "open")
	run(t, s, "form", "set", "name", "Alice", "Smith")
	run(t, s, "form", "set", "birthdate", "1990-03-14")
	run(t, s, "form", "set", "birthtime", "08:30")
	run(t, s, "form", "set", "city", "Paris")
	run(t, s, "map", "click", "48.8566", "2.3522")

	// Submitting without coordinates would fail; with the click it succeeds
	result := run(t, s, "form", "submit")
	require.Contains(t, result.(string), "Alice Smith")

	// Form closed after submit
	require.Equal(t, forms.ModeClosed, s.forms.Mode())

	// The created payload carries the separated date and time parts
	require.Equal(t, "Alice Smith", created.Name)
	require.Equal(t, 1990, created.Year)
	require.Equal(t, 3, created.Month)
	require.Equal(t, 14, created.Day)
	require.Equal(t, 8, created.Hour)
	require.Equal(t, 30, created.Minute)
	require.Equal(t, 48.8566, created.Lat)

	// The record is in the local store
	people := run(t, s, "person", "list").([]model.Person)
	require.Len(t, people, 1)
	require.Equal(t, "Alice Smith", people[0].Name)
}

func TestFormSubmitWithoutCoordinates(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	run(t, s, "form", "open")
	run(t, s, "form", "set", "name", "Alice")

	_, err := s.session.CommandRun(model.Command{Scope: "form", Operation: "submit"})
	require.Error(t, err)

	// The form stays open and no record was created
	require.Equal(t, forms.ModeCreate, s.forms.Mode())
	require.Empty(t, run(t, s, "person", "list").([]model.Person))
}

func TestMapClickRequiresOpenForm(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := s.session.CommandRun(model.Command{Scope: "map", Operation: "click", Args: []string{"1.0", "2.0"}})
	require.Error(t, err)
}

func TestSelectAndChartFlow(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/astro/chart-json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sun": "pisces"}`))
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}))

	s.dataManager.PersonManager.PersonAdd(context.Background(), model.Person{ID: "1", Name: "Alice", Birthdate: "1990-03-14", Birthtime: "08:30", Lat: 1, Lng: 2, TzStr: "Europe/Paris"})

	// Chart without selection fails before any request
	_, err := s.session.CommandRun(model.Command{Scope: "chart", Operation: "natal"})
	require.Error(t, err)

	run(t, s, "select", "toggle", "1")

	result := run(t, s, "chart", "natal").(model.ChartResult)
	require.Equal(t, model.ChartKindJSON, result.Kind)

	shown := run(t, s, "chart", "show").(model.ChartResult)
	require.Equal(t, result, shown)

	run(t, s, "select", "clear")
	require.Zero(t, s.dataManager.SelectionManager.SelectionCount())
}

func TestPersonCopyRendersJSON(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	s.dataManager.PersonManager.PersonAdd(context.Background(), model.Person{ID: "1", Name: "Alice", Lat: 1, Lng: 2})

	result := run(t, s, "person", "copy", "1").(string)

	var decoded model.Person
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	require.Equal(t, "Alice", decoded.Name)
}

func TestSystemExitClosesForm(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	run(t, s, "form", "open")
	_, err := s.session.CommandRun(model.Command{Scope: "system", Operation: "exit"})
	require.ErrorIs(t, err, ErrExit)
	require.Equal(t, forms.ModeClosed, s.forms.Mode())
}

func TestSessionManagerLifecycle(t *testing.T) {
	// Registered before the stack so it runs after the fixture's
	// cleanups have closed the test backend.
	t.Cleanup(func() { goleak.VerifyNone(t) })

	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	sm := NewSessionManager(s.dataManager, s.forms, s.mapView, s.logger)

	sessionID, err := sm.SessionAdd()
	require.NoError(t, err)

	_, exists := sm.SessionGet(sessionID)
	require.True(t, exists)

	result, err := sm.SessionRun(sessionID, model.Command{Scope: "person", Operation: "list"})
	require.NoError(t, err)
	require.Empty(t, result.([]model.Person))

	_, err = sm.SessionRun("unknown", model.Command{Scope: "person", Operation: "list"})
	require.Error(t, err)

	sm.SessionDelete(sessionID)
	_, exists = sm.SessionGet(sessionID)
	require.False(t, exists)

	sm.Shutdown()
}

func TestSessionManagerConcurrentAccess(t *testing.T) {
	s := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	sm := NewSessionManager(s.dataManager, s.forms, s.mapView, s.logger)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := sm.SessionAdd()
			if err != nil {
				t.Errorf("SessionAdd: %v", err)
				return
			}
			if _, exists := sm.SessionGet(id); !exists {
				t.Errorf("session %s missing after add", id)
				return
			}
			if _, err := sm.SessionRun(id, model.Command{Scope: "person", Operation: "list"}); err != nil {
				t.Errorf("SessionRun: %v", err)
			}
			sm.SessionDelete(id)
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				sm.cleanupInactiveSessions()
			}
		}()
	}
	wg.Wait()

	sm.Shutdown()
}
