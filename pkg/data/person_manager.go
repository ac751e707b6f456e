package data

import (
	"context"
	"errors"
	"strconv"
	"time"

	"astroscope/pkg/api"
	"astroscope/pkg/event"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
	"astroscope/pkg/store"
)

// PersonManager handles person record operations against the backend and the
// local store. Create, update, and delete degrade to local-only when the
// backend rejects or cannot be reached: the local mutation always happens,
// and the returned confirmed flag tells the caller whether the backend saw
// it.
type PersonManager struct {
	personStore  store.PersonStore
	client       *api.Client
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewPersonManager creates a new PersonManager instance.
func NewPersonManager(personStore store.PersonStore, client *api.Client, eventManager *event.EventManager, logger *log.Logger) *PersonManager {
	return &PersonManager{
		personStore:  personStore,
		client:       client,
		eventManager: eventManager,
		logger:       logger,
	}
}

// PersonLoad fetches the full normalized person list from the backend and
// replaces the store contents. On failure the store is left untouched.
func (pm *PersonManager) PersonLoad(ctx context.Context) (int, error) {
	people, err := pm.client.PersonList(ctx)
	if err != nil {
		return 0, err
	}
	pm.personStore.PersonReplaceAll(people)
	return len(people), nil
}

// PersonAdd creates a new person record. A missing id gets a time-based one.
// The backend create is attempted first; whether or not it succeeds the
// record is added to the local store and a PersonAdded event is published.
// The returned flag reports backend confirmation.
func (pm *PersonManager) PersonAdd(ctx context.Context, person model.Person) (model.Person, bool) {
	if person.ID == "" {
		person.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	confirmed := true
	if err := pm.client.PersonCreate(ctx, api.Flatten(person)); err != nil {
		confirmed = false
		pm.logger.Warn(ctx, "Backend create failed, keeping person locally", log.Fields{"id": person.ID, "error": err})
	}

	pm.personStore.PersonAdd(person)
	pm.eventManager.Publish(event.Event{Type: event.PersonAdded, Data: person})

	pm.logger.Info(ctx, "Person added", log.Fields{"id": person.ID, "confirmed": confirmed})
	return person, confirmed
}

// PersonUpdate replaces an existing record in full. The record must already
// exist locally; the backend update is attempted and the local replacement
// happens regardless of its outcome.
func (pm *PersonManager) PersonUpdate(ctx context.Context, person model.Person) (bool, error) {
	if person.ID == "" {
		return false, errors.New("person id is required for update")
	}
	if _, found := pm.personStore.PersonGet(person.ID); !found {
		return false, errors.New("person not found: " + person.ID)
	}

	confirmed := true
	if err := pm.client.PersonUpdate(ctx, person.ID, api.Flatten(person)); err != nil {
		confirmed = false
		pm.logger.Warn(ctx, "Backend update failed, keeping person locally", log.Fields{"id": person.ID, "error": err})
	}

	pm.personStore.PersonReplace(person.ID, person)
	pm.eventManager.Publish(event.Event{Type: event.PersonUpdated, Data: person})

	pm.logger.Info(ctx, "Person updated", log.Fields{"id": person.ID, "confirmed": confirmed})
	return confirmed, nil
}

// PersonDelete removes a record locally and from the backend. The local
// removal happens even when the backend delete fails. The PersonDeleted
// event carries the id so the selection set can drop it.
func (pm *PersonManager) PersonDelete(ctx context.Context, id string) (bool, error) {
	if _, found := pm.personStore.PersonGet(id); !found {
		return false, errors.New("person not found: " + id)
	}

	confirmed := true
	if err := pm.client.PersonDelete(ctx, id); err != nil {
		confirmed = false
		pm.logger.Warn(ctx, "Backend delete failed, removing person locally", log.Fields{"id": id, "error": err})
	}

	pm.personStore.PersonRemove(id)
	pm.eventManager.Publish(event.Event{Type: event.PersonDeleted, Data: id})

	pm.logger.Info(ctx, "Person deleted", log.Fields{"id": id, "confirmed": confirmed})
	return confirmed, nil
}

// PersonGet retrieves a single record from the local store.
func (pm *PersonManager) PersonGet(id string) (model.Person, bool) {
	return pm.personStore.PersonGet(id)
}

// PersonList returns all records in the local store.
func (pm *PersonManager) PersonList() []model.Person {
	return pm.personStore.PersonList()
}

// PersonExport writes the current person list to a JSON file.
func (pm *PersonManager) PersonExport(ctx context.Context, filename string) error {
	if err := store.FileExport(pm.personStore.PersonList(), filename); err != nil {
		pm.logger.Error(ctx, "Person export failed", log.Fields{"filename": filename, "error": err})
		return err
	}
	pm.logger.Info(ctx, "Person list exported", log.Fields{"filename": filename, "count": pm.personStore.PersonCount()})
	return nil
}

// PersonImport replaces the local store with records read from a JSON file.
// Imported records are local-only until they are individually saved.
func (pm *PersonManager) PersonImport(ctx context.Context, filename string) (int, error) {
	people, err := store.FileImport(filename)
	if err != nil {
		pm.logger.Error(ctx, "Person import failed", log.Fields{"filename": filename, "error": err})
		return 0, err
	}
	pm.personStore.PersonReplaceAll(people)
	pm.logger.Info(ctx, "Person list imported", log.Fields{"filename": filename, "count": len(people)})
	return len(people), nil
}
