package session

import (
	"context"
	"errors"
	"fmt"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// handleSelectToggle handles the select toggle command
func handleSelectToggle(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling select toggle command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for select toggle", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for select toggle")
	}

	id := cmd.Args[0]
	selected, err := s.DataManager.SelectionManager.SelectionToggle(id)
	if err != nil {
		s.logger.Error(ctx, "Failed to toggle selection", log.Fields{"error": err})
		return nil, err
	}

	count := s.DataManager.SelectionManager.SelectionCount()
	if selected {
		return fmt.Sprintf("Person '%s' selected (%d selected)", id, count), nil
	}
	return fmt.Sprintf("Person '%s' deselected (%d selected)", id, count), nil
}

// handleSelectList handles the select list command
func handleSelectList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling select list command", nil)

	return s.DataManager.SelectionManager.SelectionList(), nil
}

// handleSelectClear handles the select clear command
func handleSelectClear(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling select clear command", nil)

	s.DataManager.SelectionManager.SelectionClear()
	return "Selection cleared", nil
}
