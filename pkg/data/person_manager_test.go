package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"astroscope/pkg/event"
	"astroscope/pkg/model"
)

func TestPersonAddConfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	dm, _ := newTestDataManager(t, server)

	person, confirmed := dm.PersonManager.PersonAdd(context.Background(), testPerson("5", "Alice"))
	require.True(t, confirmed)
	require.Equal(t, "5", person.ID)

	stored, found := dm.PersonManager.PersonGet("5")
	require.True(t, found)
	require.Equal(t, "Alice", stored.Name)
}

func TestPersonAddDegradesToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dm, eventManager := newTestDataManager(t, server)

	var added []model.Person
	eventManager.Subscribe(event.PersonAdded, func(e event.Event) {
		added = append(added, e.Data.(model.Person))
	})

	person, confirmed := dm.PersonManager.PersonAdd(context.Background(), testPerson("", "Alice"))
	require.False(t, confirmed)

	// A missing id gets a time-based one
	require.NotEmpty(t, person.ID)
	_, err := strconv.ParseInt(person.ID, 10, 64)
	require.NoError(t, err)

	// The record exists locally despite the backend failure
	_, found := dm.PersonManager.PersonGet(person.ID)
	require.True(t, found)
	require.Len(t, added, 1)
}

func TestPersonUpdateRequiresExistingRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	dm, _ := newTestDataManager(t, server)

	_, err := dm.PersonManager.PersonUpdate(context.Background(), testPerson("missing", "Nobody"))
	require.Error(t, err)
}

func TestPersonUpdateDegradesToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	dm, _ := newTestDataManager(t, server)
	dm.PersonManager.PersonAdd(context.Background(), testPerson("7", "Alice"))

	updated := testPerson("7", "Alice Smith")
	confirmed, err := dm.PersonManager.PersonUpdate(context.Background(), updated)
	require.NoError(t, err)
	require.False(t, confirmed)

	stored, found := dm.PersonManager.PersonGet("7")
	require.True(t, found)
	require.Equal(t, "Alice Smith", stored.Name)
}

func TestPersonDeleteDegradesToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	dm, eventManager := newTestDataManager(t, server)
	dm.PersonManager.PersonAdd(context.Background(), testPerson("7", "Alice"))

	var deleted []string
	eventManager.Subscribe(event.PersonDeleted, func(e event.Event) {
		deleted = append(deleted, e.Data.(string))
	})

	confirmed, err := dm.PersonManager.PersonDelete(context.Background(), "7")
	require.NoError(t, err)
	require.False(t, confirmed)

	_, found := dm.PersonManager.PersonGet("7")
	require.False(t, found)
	require.Equal(t, []string{"7"}, deleted)
}

func TestPersonLoadReplacesStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "1", "name": "Alice", "year": 1990, "month": 3, "day": 14, "hour": 8, "minute": 30, "lat": 1.0, "lng": 2.0}]`))
	}))
	defer server.Close()

	dm, _ := newTestDataManager(t, server)
	dm.PersonManager.PersonAdd(context.Background(), testPerson("old", "Old"))

	count, err := dm.PersonManager.PersonLoad(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, found := dm.PersonManager.PersonGet("old")
	require.False(t, found)
	_, found = dm.PersonManager.PersonGet("1")
	require.True(t, found)
}

func TestPersonExportImportRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	dm, _ := newTestDataManager(t, server)
	dm.PersonManager.PersonAdd(context.Background(), testPerson("1", "Alice"))
	dm.PersonManager.PersonAdd(context.Background(), testPerson("2", "Bob"))

	filename := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, dm.PersonManager.PersonExport(context.Background(), filename))

	dm.PersonManager.PersonDelete(context.Background(), "1")
	dm.PersonManager.PersonDelete(context.Background(), "2")

	count, err := dm.PersonManager.PersonImport(context.Background(), filename)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	stored, found := dm.PersonManager.PersonGet("2")
	require.True(t, found)
	require.Equal(t, "Bob", stored.Name)
}
