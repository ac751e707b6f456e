package session

import (
	"context"
	"errors"

	"astroscope/pkg/model"
)

// ErrExit signals the input loop to stop. It is not a failure.
var ErrExit = errors.New("exit requested")

// handleSystemExit handles the system exit and quit commands
func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling system exit command", nil)

	s.Forms.Close()
	return nil, ErrExit
}
