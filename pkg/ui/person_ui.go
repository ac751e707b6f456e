package ui

import (
	"io"

	"astroscope/pkg/model"
)

// PersonUI handles the rendering of person records.
type PersonUI struct {
	visualizer *Visualizer
}

func NewPersonUI(w io.Writer, useColor bool) *PersonUI {
	return &PersonUI{
		visualizer: NewVisualizer(w, useColor),
	}
}

// PersonList displays all person records with a selection mark for each
// currently selected one.
func (pui *PersonUI) PersonList(people []model.Person, selected []string) {
	if len(people) == 0 {
		pui.visualizer.Println("No person records.")
		return
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	pui.visualizer.Println("Person records:")
	for i, person := range people {
		mark := " "
		if selectedSet[person.ID] {
			mark = "*"
		}
		pui.visualizer.Printf("%2d. [%s] %-20s %s %s", i+1, mark, person.Name, person.Birthdate, person.Birthtime)
		if person.City != "" {
			pui.visualizer.Printf("  %s", person.City)
		}
		if person.HasCoordinates() {
			pui.visualizer.Printf("  (%.4f, %.4f)", person.Lat, person.Lng)
		} else {
			pui.visualizer.Printf("  (no location)")
		}
		pui.visualizer.PrintColored("  id="+person.ID+"\n", ColorGray)
	}
}
