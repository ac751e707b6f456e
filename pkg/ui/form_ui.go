package ui

import (
	"io"

	"astroscope/pkg/forms"
)

// FormUI handles the rendering of the add/edit form state.
type FormUI struct {
	visualizer *Visualizer
}

func NewFormUI(w io.Writer, useColor bool) *FormUI {
	return &FormUI{
		visualizer: NewVisualizer(w, useColor),
	}
}

// FormShow displays the current form fields.
func (fui *FormUI) FormShow(state forms.State) {
	if state.Mode == forms.ModeClosed {
		fui.visualizer.Println("No form is open.")
		return
	}

	fui.visualizer.PrintColored("Form ("+state.Mode.String()+"):\n", ColorLightBlue)
	if state.EditingID != "" {
		fui.visualizer.Printf("  id:        %s\n", state.EditingID)
	}
	fui.visualizer.Printf("  name:      %s\n", state.Name)
	fui.visualizer.Printf("  birthdate: %d-%02d-%02d\n", state.Year, state.Month, state.Day)
	fui.visualizer.Printf("  birthtime: %02d:%02d\n", state.Hour, state.Minute)
	fui.visualizer.Printf("  city:      %s\n", state.City)
	if state.Lat != 0 || state.Lng != 0 {
		fui.visualizer.Printf("  location:  %.4f, %.4f\n", state.Lat, state.Lng)
	} else {
		fui.visualizer.PrintColored("  location:  not set (click the map or look up a city)\n", ColorOrange)
	}
	fui.visualizer.Printf("  tz:        %s\n", state.TzStr)
}
