package data

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"astroscope/pkg/api"
	"astroscope/pkg/event"
	"astroscope/pkg/log"
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

// newTestDataManager wires a data manager against the given test server.
func newTestDataManager(t *testing.T, server *httptest.Server) (*DataManager, *event.EventManager) {
	t.Helper()

	logger := newTestLogger(t)
	cfg := &model.Config{
		APIBaseURL:      server.URL,
		DefaultTimezone: "Asia/Tehran",
		HTTPTimeoutSec:  5,
	}
	eventManager := event.NewEventManager(logger)
	personStore := store.NewPersonStorage(logger)
	client := api.NewClient(cfg, logger)

	return NewDataManager(personStore, client, eventManager, logger), eventManager
}

func testPerson(id, name string) model.Person {
	return model.Person{
		ID:        id,
		Name:      name,
		Birthdate: "1990-03-14",
		Birthtime: "08:30",
		City:      "Paris",
		Lat:       48.8566,
		Lng:       2.3522,
		TzStr:     "Europe/Paris",
	}
}
