package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// handlePersonList handles the person list command
func handlePersonList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person list command", nil)

	people := s.DataManager.PersonManager.PersonList()
	s.logger.Debug(ctx, "Person list retrieved", log.Fields{"count": len(people)})
	return people, nil
}

// handlePersonLoad handles the person load command
func handlePersonLoad(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person load command", nil)

	count, err := s.DataManager.PersonManager.PersonLoad(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to load person list", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to load person list: %w", err)
	}

	s.logger.Info(ctx, "Person list loaded", log.Fields{"count": count})
	return fmt.Sprintf("Loaded %d person record(s) from backend", count), nil
}

// handlePersonDelete handles the person delete command
func handlePersonDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for person delete", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for person delete")
	}

	id := cmd.Args[0]
	confirmed, err := s.DataManager.PersonManager.PersonDelete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete person", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to delete person: %w", err)
	}

	if !confirmed {
		return fmt.Sprintf("Person '%s' removed locally; backend did not confirm the delete", id), nil
	}
	return fmt.Sprintf("Person '%s' deleted", id), nil
}

// handlePersonCopy handles the person copy command, rendering one record as
// indented JSON suitable for pasting elsewhere.
func handlePersonCopy(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person copy command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for person copy", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for person copy")
	}

	id := cmd.Args[0]
	person, found := s.DataManager.PersonManager.PersonGet(id)
	if !found {
		s.logger.Warn(ctx, "Person not found", log.Fields{"id": id})
		return nil, fmt.Errorf("person not found: %s", id)
	}

	data, err := json.MarshalIndent(person, "", "  ")
	if err != nil {
		s.logger.Error(ctx, "Failed to marshal person", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to marshal person: %w", err)
	}
	return string(data), nil
}

// handlePersonExport handles the person export command
func handlePersonExport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person export command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for person export", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for person export")
	}

	filename := cmd.Args[0]
	if err := s.DataManager.PersonManager.PersonExport(ctx, filename); err != nil {
		return nil, fmt.Errorf("failed to export person list: %w", err)
	}
	return fmt.Sprintf("Person list exported to '%s'", filename), nil
}

// handlePersonImport handles the person import command. Imported records
// replace the local store, so the selection is cleared.
func handlePersonImport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling person import command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for person import", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for person import")
	}

	filename := cmd.Args[0]
	count, err := s.DataManager.PersonManager.PersonImport(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to import person list: %w", err)
	}
	s.DataManager.SelectionManager.SelectionClear()

	return fmt.Sprintf("Imported %d person record(s) from '%s'", count, filename), nil
}
