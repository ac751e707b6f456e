package session

import (
	"context"
	"errors"
	"fmt"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new Command from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Info(ctx, "Validating command", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	if c.command.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating scope and operation", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	switch c.command.Scope {
	case "person":
		return c.validatePersonCommand()
	case "form":
		return c.validateFormCommand()
	case "map":
		return c.validateMapCommand()
	case "select":
		return c.validateSelectCommand()
	case "chart":
		return c.validateChartCommand()
	case "system":
		return c.validateSystemCommand()
	default:
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}
}

func (c *Command) validatePersonCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating person command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "list", "load":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for person command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("person %s command does not accept any arguments", c.command.Operation)
		}
	case "delete", "copy":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for person command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("person %s command requires 1 argument: <person_id>", c.command.Operation)
		}
	case "export", "import":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for person command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("person %s command requires 1 argument: <filename>", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid person operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid person operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateFormCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating form command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "open":
		if len(c.command.Args) > 1 {
			c.logger.Error(ctx, "Invalid number of arguments for form open command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("form open command requires 0 or 1 argument: [person_id]")
		}
	case "set":
		if len(c.command.Args) < 2 {
			c.logger.Error(ctx, "Invalid number of arguments for form set command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("form set command requires at least 2 arguments: <field> <value>")
		}
	case "show", "submit", "cancel":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for form command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("form %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid form operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid form operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateMapCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating map command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "click":
		if len(c.command.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for map click command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("map click command requires 2 arguments: <lat> <lng>")
		}
	case "show":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for map show command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("map show command does not accept any arguments")
		}
	default:
		c.logger.Error(ctx, "Invalid map operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid map operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateSelectCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating select command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "toggle":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for select toggle command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("select toggle command requires 1 argument: <person_id>")
		}
	case "list", "clear":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for select command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("select %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid select operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid select operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateChartCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating chart command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "natal", "transit", "report", "synastry", "composite", "show":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for chart command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("chart %s command does not accept any arguments", c.command.Operation)
		}
	case "save":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for chart save command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("chart save command requires 1 argument: <filename>")
		}
	default:
		c.logger.Error(ctx, "Invalid chart operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid chart operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateSystemCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating system command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "exit", "quit":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for system command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("system %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid system operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid system operation: %s", c.command.Operation)
	}
	return nil
}
