// Package adapter bridges user-facing interfaces to the session package.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
	"astroscope/pkg/session"
)

// CLIAdapter provides command-line interface support backed by one session.
type CLIAdapter struct {
	sessionID      string
	adapterManager *AdapterManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new instance of CLIAdapter bound to a session.
func NewCLIAdapter(sessionID string, am *AdapterManager, logger *log.Logger) (*CLIAdapter, error) {
	logger.Info(context.Background(), "Creating new CLI adapter", log.Fields{"sessionID": sessionID})
	return &CLIAdapter{
		sessionID:      sessionID,
		adapterManager: am,
		logger:         logger,
	}, nil
}

// AdapterStart starts the CLI adapter
func (a *CLIAdapter) AdapterStart() error {
	a.logger.Info(context.Background(), "CLI adapter started", log.Fields{"sessionID": a.sessionID})
	return nil
}

// AdapterStop signals the CLI adapter to stop
func (a *CLIAdapter) AdapterStop() error {
	a.logger.Info(context.Background(), "CLI adapter stopped", log.Fields{"sessionID": a.sessionID})
	return nil
}

// GetType returns the type of the adapter
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// CommandProcess validates a command and routes it through the adapter
// manager's command channel into the adapter's session.
func (a *CLIAdapter) CommandProcess(cmd model.Command) (interface{}, error) {
	sessionCmd := session.NewCommand(cmd, a.logger)
	if err := sessionCmd.Validate(); err != nil {
		return nil, err
	}

	return a.adapterManager.CommandRun(a.sessionID, cmd)
}

// ProcessInput converts the input string into a command and runs it
func (a *CLIAdapter) ProcessInput(input string) (interface{}, error) {
	cmd, err := a.parseCommand(input)
	if err != nil {
		return nil, err
	}
	return a.CommandProcess(cmd)
}

func (a *CLIAdapter) parseCommand(input string) (model.Command, error) {
	args := strings.Fields(input)
	if len(args) == 0 {
		a.logger.Info(context.Background(), "Empty command", nil)
		return model.Command{}, fmt.Errorf("empty command")
	}

	cmd := model.Command{
		Scope:     strings.ToLower(args[0]),
		Operation: "",
		Args:      []string{},
	}

	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	a.logger.Debug(context.Background(), "Command parsed", log.Fields{"command": cmd})
	return cmd, nil
}

// Session returns the session backing this adapter.
func (a *CLIAdapter) Session() (*session.Session, bool) {
	return a.adapterManager.SessionGet(a.sessionID)
}

// PromptGet builds the prompt from the current form mode and selection count.
func (a *CLIAdapter) PromptGet() string {
	sess, exists := a.adapterManager.SessionGet(a.sessionID)
	if !exists {
		return "> "
	}

	prompt := "astroscope"
	if mode := sess.Forms.Mode(); mode != forms.ModeClosed {
		prompt += fmt.Sprintf(" [form:%s]", mode)
	}
	if count := sess.DataManager.SelectionManager.SelectionCount(); count > 0 {
		prompt += fmt.Sprintf(" (%d selected)", count)
	}
	return prompt + "> "
}
