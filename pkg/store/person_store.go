// Package store holds the in-memory person record collection. It is the
// source of truth for the UI during a session; the backend may or may not
// have confirmed any given record (see the data package's degrade-to-local
// policy), so the store is a client-side cache, not authoritative state.
package store

import (
	"context"
	"sync"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// PersonStore defines the interface for person record storage operations.
type PersonStore interface {
	PersonList() []model.Person
	PersonGet(id string) (model.Person, bool)
	PersonAdd(person model.Person)
	PersonReplace(id string, person model.Person) bool
	PersonRemove(id string) bool
	PersonReplaceAll(people []model.Person)
	PersonCount() int
}

// PersonStorage implements the PersonStore interface with an ordered
// in-memory collection. Records keep their insertion order.
type PersonStorage struct {
	people []model.Person
	mu     sync.RWMutex
	logger *log.Logger
}

// NewPersonStorage creates a new empty PersonStorage instance.
func NewPersonStorage(logger *log.Logger) *PersonStorage {
	return &PersonStorage{logger: logger}
}

// PersonList returns a copy of all person records in insertion order.
func (s *PersonStorage) PersonList() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := make([]model.Person, len(s.people))
	copy(people, s.people)
	return people
}

// PersonGet retrieves a person record by id.
func (s *PersonStorage) PersonGet(id string) (model.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, person := range s.people {
		if person.ID == id {
			return person, true
		}
	}
	return model.Person{}, false
}

// PersonAdd appends a person record to the collection.
func (s *PersonStorage) PersonAdd(person model.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people = append(s.people, person)
	s.logger.Debug(context.Background(), "Person added to store", log.Fields{"id": person.ID, "count": len(s.people)})
}

// PersonReplace replaces the record with the given id in place, preserving
// its position. Returns false if no record with that id exists.
func (s *PersonStorage) PersonReplace(id string, person model.Person) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.people {
		if s.people[i].ID == id {
			s.people[i] = person
			s.logger.Debug(context.Background(), "Person replaced in store", log.Fields{"id": id})
			return true
		}
	}
	return false
}

// PersonRemove removes the record with the given id. Returns false if no
// record with that id exists.
func (s *PersonStorage) PersonRemove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.people {
		if s.people[i].ID == id {
			s.people = append(s.people[:i], s.people[i+1:]...)
			s.logger.Debug(context.Background(), "Person removed from store", log.Fields{"id": id, "count": len(s.people)})
			return true
		}
	}
	return false
}

// PersonReplaceAll replaces the whole collection, used after a list reload.
func (s *PersonStorage) PersonReplaceAll(people []model.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people = make([]model.Person, len(people))
	copy(s.people, people)
	s.logger.Debug(context.Background(), "Store replaced", log.Fields{"count": len(s.people)})
}

// PersonCount returns the number of records in the store.
func (s *PersonStorage) PersonCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people)
}
