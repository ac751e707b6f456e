package cli

import "fmt"

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> [operation] [arguments]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	fmt.Printf("Commands for %s:\n\n", scope)
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			fmt.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "person",
		Operation: "list",
		ShortDesc: "List person records",
		LongDesc:  "Displays all person records with a mark next to each selected one.",
		Syntax:    "person list",
		Examples:  []string{"person list"},
	},
	{
		Scope:     "person",
		Operation: "load",
		ShortDesc: "Reload records from the backend",
		LongDesc:  "Fetches the person list from the backend and replaces the local records.",
		Syntax:    "person load",
		Examples:  []string{"person load"},
	},
	{
		Scope:     "person",
		Operation: "delete",
		ShortDesc: "Delete a person record",
		LongDesc:  "Deletes a person record after confirmation. The record is removed locally even when the backend does not confirm the delete.",
		Syntax:    "person delete <person_id>",
		Arguments: []string{"person_id: The id of the record to delete"},
		Examples:  []string{"person delete 1717171717171"},
	},
	{
		Scope:     "person",
		Operation: "copy",
		ShortDesc: "Print a record as JSON",
		LongDesc:  "Renders one person record as indented JSON suitable for pasting elsewhere.",
		Syntax:    "person copy <person_id>",
		Arguments: []string{"person_id: The id of the record to copy"},
		Examples:  []string{"person copy 1717171717171"},
	},
	{
		Scope:     "person",
		Operation: "export",
		ShortDesc: "Export records to a file",
		LongDesc:  "Writes the person list to a JSON file.",
		Syntax:    "person export <filename>",
		Arguments: []string{"filename: The file to write"},
		Examples:  []string{"person export people.json"},
	},
	{
		Scope:     "person",
		Operation: "import",
		ShortDesc: "Import records from a file",
		LongDesc:  "Replaces the local person list with records from a JSON file and clears the selection. Imported records are local-only until saved.",
		Syntax:    "person import <filename>",
		Arguments: []string{"filename: The file to read"},
		Examples:  []string{"person import people.json"},
	},
	{
		Scope:     "form",
		Operation: "open",
		ShortDesc: "Open the add/edit form",
		LongDesc:  "Opens the form empty for a new person, or pre-filled for an existing one when a person id is given.",
		Syntax:    "form open [person_id]",
		Arguments: []string{"person_id: (Optional) The record to edit"},
		Examples:  []string{"form open", "form open 1717171717171"},
	},
	{
		Scope:     "form",
		Operation: "set",
		ShortDesc: "Set a form field",
		LongDesc:  "Sets one field of the open form. Setting the city also looks up its coordinates and moves the map marker there. Fields: name, city, birthdate (YYYY-MM-DD), birthtime (HH:MM), tz, lat, lng.",
		Syntax:    "form set <field> <value>",
		Arguments: []string{"field: The field to set", "value: The new value; words after the field name are joined"},
		Examples:  []string{"form set name Alice Smith", "form set city Paris", "form set birthdate 1990-03-14", "form set birthtime 08:30"},
	},
	{
		Scope:     "form",
		Operation: "show",
		ShortDesc: "Show the form fields",
		LongDesc:  "Displays the current form fields and whether birthplace coordinates are set.",
		Syntax:    "form show",
		Examples:  []string{"form show"},
	},
	{
		Scope:     "form",
		Operation: "submit",
		ShortDesc: "Submit the form",
		LongDesc:  "Validates the form and saves the person. Coordinates are required; without them nothing is saved and the form stays open. When the backend is unreachable the record is kept locally unconfirmed.",
		Syntax:    "form submit",
		Examples:  []string{"form submit"},
	},
	{
		Scope:     "form",
		Operation: "cancel",
		ShortDesc: "Close the form",
		LongDesc:  "Discards in-progress edits, clears the map marker, and closes the form.",
		Syntax:    "form cancel",
		Examples:  []string{"form cancel"},
	},
	{
		Scope:     "map",
		Operation: "click",
		ShortDesc: "Click the map",
		LongDesc:  "Places the marker at the given coordinates and records them as the birthplace in the open form.",
		Syntax:    "map click <lat> <lng>",
		Arguments: []string{"lat: Latitude in decimal degrees", "lng: Longitude in decimal degrees"},
		Examples:  []string{"map click 48.8566 2.3522"},
	},
	{
		Scope:     "map",
		Operation: "show",
		ShortDesc: "Show the map state",
		LongDesc:  "Displays the map center, zoom level, and marker position.",
		Syntax:    "map show",
		Examples:  []string{"map show"},
	},
	{
		Scope:     "select",
		Operation: "toggle",
		ShortDesc: "Toggle a person's selection",
		LongDesc:  "Selects the person if unselected, deselects otherwise. Selection order decides which person is sent first in pair charts.",
		Syntax:    "select toggle <person_id>",
		Arguments: []string{"person_id: The record to toggle"},
		Examples:  []string{"select toggle 1717171717171"},
	},
	{
		Scope:     "select",
		Operation: "list",
		ShortDesc: "List selected persons",
		LongDesc:  "Displays the selected person records in selection order.",
		Syntax:    "select list",
		Examples:  []string{"select list"},
	},
	{
		Scope:     "select",
		Operation: "clear",
		ShortDesc: "Clear the selection",
		LongDesc:  "Deselects all persons.",
		Syntax:    "select clear",
		Examples:  []string{"select clear"},
	},
	{
		Scope:     "chart",
		Operation: "natal",
		ShortDesc: "Natal chart for the selected person",
		LongDesc:  "Requests a natal chart. Requires exactly one selected person.",
		Syntax:    "chart natal",
		Examples:  []string{"chart natal"},
	},
	{
		Scope:     "chart",
		Operation: "transit",
		ShortDesc: "Transit chart for the selected person",
		LongDesc:  "Requests a transit chart. Requires exactly one selected person.",
		Syntax:    "chart transit",
		Examples:  []string{"chart transit"},
	},
	{
		Scope:     "chart",
		Operation: "report",
		ShortDesc: "Report for the selected person",
		LongDesc:  "Requests a written report. Requires exactly one selected person.",
		Syntax:    "chart report",
		Examples:  []string{"chart report"},
	},
	{
		Scope:     "chart",
		Operation: "synastry",
		ShortDesc: "Synastry chart for two selected persons",
		LongDesc:  "Requests a synastry chart. Requires exactly two selected persons; the first selected is sent as person1.",
		Syntax:    "chart synastry",
		Examples:  []string{"chart synastry"},
	},
	{
		Scope:     "chart",
		Operation: "composite",
		ShortDesc: "Composite chart for two selected persons",
		LongDesc:  "Requests a composite chart. Requires exactly two selected persons; the first selected is sent as person1.",
		Syntax:    "chart composite",
		Examples:  []string{"chart composite"},
	},
	{
		Scope:     "chart",
		Operation: "show",
		ShortDesc: "Show the latest chart",
		LongDesc:  "Displays the most recently retrieved chart artifact.",
		Syntax:    "chart show",
		Examples:  []string{"chart show"},
	},
	{
		Scope:     "chart",
		Operation: "save",
		ShortDesc: "Save the latest chart to a file",
		LongDesc:  "Writes the most recently retrieved chart artifact to a file as-is.",
		Syntax:    "chart save <filename>",
		Arguments: []string{"filename: The file to write"},
		Examples:  []string{"chart save natal.json", "chart save transit.svg"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Exits Astroscope.",
		Syntax:    "system exit",
		Examples:  []string{"system exit"},
	},
	{
		Scope:     "system",
		Operation: "quit",
		ShortDesc: "Quit the program",
		LongDesc:  "Quits Astroscope. Equivalent to 'system exit'.",
		Syntax:    "system quit",
		Examples:  []string{"system quit"},
	},
}
