package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// handleFormOpen handles the form open command. Without an argument the form
// opens empty in create mode; with a person id it opens pre-filled in edit
// mode.
func handleFormOpen(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling form open command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 1 {
		s.logger.Error(ctx, "Invalid number of arguments for form open", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for form open")
	}

	if len(cmd.Args) == 0 {
		s.Forms.OpenForCreate()
		return "Form opened for a new person", nil
	}

	id := cmd.Args[0]
	person, found := s.DataManager.PersonManager.PersonGet(id)
	if !found {
		s.logger.Warn(ctx, "Person not found", log.Fields{"id": id})
		return nil, fmt.Errorf("person not found: %s", id)
	}

	s.Forms.OpenForEdit(person)
	return fmt.Sprintf("Form opened for editing '%s'", person.Name), nil
}

// handleFormSet handles the form set command. All arguments after the field
// name are joined so multi-word values need no quoting.
func handleFormSet(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling form set command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 {
		s.logger.Error(ctx, "Invalid number of arguments for form set", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for form set")
	}

	field := cmd.Args[0]
	value := strings.Join(cmd.Args[1:], " ")

	if err := s.Forms.SetField(field, value); err != nil {
		s.logger.Error(ctx, "Failed to set form field", log.Fields{"field": field, "error": err})
		return nil, err
	}
	return fmt.Sprintf("Field '%s' set", field), nil
}

// handleFormShow handles the form show command
func handleFormShow(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling form show command", nil)

	return s.Forms.Snapshot(), nil
}

// handleFormSubmit handles the form submit command. A create-mode form adds a
// new person; an edit-mode form replaces the existing record. The form closes
// on success and stays open on validation failure.
func handleFormSubmit(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling form submit command", nil)

	person, err := s.Forms.BuildPerson()
	if err != nil {
		s.logger.Error(ctx, "Form submit rejected", log.Fields{"error": err})
		return nil, err
	}

	var confirmed bool
	if person.ID == "" {
		person, confirmed = s.DataManager.PersonManager.PersonAdd(ctx, person)
	} else {
		confirmed, err = s.DataManager.PersonManager.PersonUpdate(ctx, person)
		if err != nil {
			s.logger.Error(ctx, "Failed to update person", log.Fields{"error": err})
			return nil, fmt.Errorf("failed to update person: %w", err)
		}
	}
	s.Forms.Close()

	if !confirmed {
		return fmt.Sprintf("Person '%s' saved locally; backend did not confirm the save", person.Name), nil
	}
	return fmt.Sprintf("Person '%s' saved", person.Name), nil
}

// handleFormCancel handles the form cancel command
func handleFormCancel(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling form cancel command", nil)

	s.Forms.Close()
	return "Form closed", nil
}
