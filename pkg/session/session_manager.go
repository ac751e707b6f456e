package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"astroscope/pkg/data"
	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// SessionManager manages multiple concurrent sessions. The sessions map is
// shared with the cleanup goroutine and guarded by mu.
type SessionManager struct {
	mu             sync.RWMutex
	sessions       map[string]*Session
	dataManager    *data.DataManager
	formController *forms.Controller
	mapView        *mappicker.TerminalMap
	cleanupTicker  *time.Ticker
	done           chan bool
	commandQueue   chan commandExecution
	logger         *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	result  chan interface{}
	err     chan error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, formController *forms.Controller, mapView *mappicker.TerminalMap, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:       make(map[string]*Session),
		dataManager:    dataManager,
		formController: formController,
		mapView:        mapView,
		done:           make(chan bool),
		commandQueue:   make(chan commandExecution),
		logger:         logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new session", nil)

	sessionID := uuid.NewString()
	session := NewSession(sessionID, sm.dataManager, sm.formController, sm.mapView, sm.logger)

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	ctx := context.Background()
	sm.logger.Debug(ctx, "Retrieving session", log.Fields{"sessionID": sessionID})

	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !exists {
		sm.logger.Warn(ctx, "Session not found", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Deleting session", log.Fields{"sessionID": sessionID})

	sm.mu.Lock()
	_, exists := sm.sessions[sessionID]
	if exists {
		delete(sm.sessions, sessionID)
	}
	sm.mu.Unlock()

	if !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Running command in session", log.Fields{"sessionID": sessionID, "command": cmd})

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		sm.logger.Error(ctx, "Session not found", log.Fields{"sessionID": sessionID})
		return nil, errors.New("session not found")
	}

	// Log command in command log
	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	result := make(chan interface{})
	err := make(chan error)

	sm.commandQueue <- commandExecution{
		session: session,
		command: cmd,
		result:  result,
		err:     err,
	}

	select {
	case res := <-result:
		return res, nil
	case e := <-err:
		return nil, e
	}
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for cmd := range sm.commandQueue {
		sm.logger.Debug(ctx, "Processing command", log.Fields{"sessionID": cmd.session.ID, "command": cmd.command})
		result, err := cmd.session.CommandRun(cmd.command)
		if err != nil {
			cmd.err <- err
		} else {
			cmd.result <- result
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive sessions
func (sm *SessionManager) startCleanupRoutine() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting cleanup routine", nil)

	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions()
			case <-sm.done:
				sm.logger.Info(ctx, "Stopping cleanup routine", nil)
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// Shutdown stops the cleanup routine and the command executor. No commands
// may be submitted after Shutdown returns.
func (sm *SessionManager) Shutdown() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Shutting down SessionManager", nil)

	sm.done <- true
	close(sm.commandQueue)
}

// cleanupInactiveSessions removes inactive sessions
func (sm *SessionManager) cleanupInactiveSessions() {
	ctx := context.Background()
	sm.logger.Debug(ctx, "Running cleanup for inactive sessions", nil)

	now := time.Now()

	sm.mu.RLock()
	var expired []string
	for id, session := range sm.sessions {
		if now.Sub(session.LastActive()) > defaultSessionTimeout {
			expired = append(expired, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range expired {
		sm.logger.Info(ctx, "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}
