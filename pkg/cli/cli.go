// Package cli implements the interactive terminal loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"astroscope/pkg/adapter"
	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
	"astroscope/pkg/session"
	"astroscope/pkg/ui"
)

// CLI represents the command-line interface
type CLI struct {
	adapter    *adapter.CLIAdapter
	rl         *readline.Instance
	visualizer *ui.Visualizer
	personUI   *ui.PersonUI
	chartUI    *ui.ChartUI
	formUI     *ui.FormUI
	logger     *log.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(cliAdapter *adapter.CLIAdapter, historyFile string, logger *log.Logger) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cliAdapter.PromptGet(),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		adapter:    cliAdapter,
		rl:         rl,
		visualizer: ui.NewVisualizer(os.Stdout, true),
		personUI:   ui.NewPersonUI(os.Stdout, true),
		chartUI:    ui.NewChartUI(os.Stdout, true),
		formUI:     ui.NewFormUI(os.Stdout, true),
		logger:     logger,
	}, nil
}

// Close releases the readline instance.
func (c *CLI) Close() error {
	return c.rl.Close()
}

// Run starts the CLI and handles user input until exit or EOF.
func (c *CLI) Run() error {
	if err := c.adapter.AdapterStart(); err != nil {
		return fmt.Errorf("failed to start adapter: %w", err)
	}

	fmt.Println("Welcome to Astroscope! Use 'help' for the list of commands.")

	for {
		c.rl.SetPrompt(c.adapter.PromptGet())

		input, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("Use 'exit' or 'quit' to exit the program.")
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			c.visualizer.PrintColored(fmt.Sprintf("Error reading input: %v\n", err), ui.ColorRed)
			c.logger.Error(context.Background(), "Error reading input", log.Fields{"error": err})
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			input = "system exit"
		}

		args := strings.Fields(input)
		if strings.ToLower(args[0]) == "help" {
			c.printHelp(args[1:])
			continue
		}

		// Destructive command, ask before dispatching
		if len(args) >= 2 && strings.ToLower(args[0]) == "person" && strings.ToLower(args[1]) == "delete" {
			if !c.confirmDelete(args[2:]) {
				fmt.Println("Delete cancelled.")
				continue
			}
		}

		result, err := c.adapter.ProcessInput(input)
		if err != nil {
			if errors.Is(err, session.ErrExit) {
				return nil
			}
			c.visualizer.PrintColored(fmt.Sprintf("Error: %v\n", err), ui.ColorRed)
			continue
		}
		c.renderResult(result)
	}
}

// confirmDelete prompts for a y/N confirmation before a person delete.
func (c *CLI) confirmDelete(args []string) bool {
	target := "this person"
	if len(args) > 0 {
		target = fmt.Sprintf("person '%s'", args[0])
	}

	c.rl.SetPrompt(fmt.Sprintf("Delete %s? [y/N] ", target))
	line, err := c.rl.Readline()
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// renderResult dispatches a command result to the matching renderer.
func (c *CLI) renderResult(result interface{}) {
	switch v := result.(type) {
	case nil:
	case string:
		fmt.Println(v)
	case []model.Person:
		selected := c.selectionIDs()
		c.personUI.PersonList(v, selected)
	case model.ChartResult:
		c.chartUI.ChartShow(v)
	case forms.State:
		c.formUI.FormShow(v)
	default:
		fmt.Printf("%v\n", v)
	}
}

// selectionIDs fetches the current selection for list rendering.
func (c *CLI) selectionIDs() []string {
	sess, exists := c.adapter.Session()
	if !exists {
		return nil
	}
	return sess.DataManager.SelectionManager.SelectionIDs()
}
