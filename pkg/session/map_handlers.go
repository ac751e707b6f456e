package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// handleMapClick handles the map click command, simulating a click on the
// birthplace picker at the given coordinates.
func handleMapClick(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling map click command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		s.logger.Error(ctx, "Invalid number of arguments for map click", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("invalid number of arguments for map click")
	}

	if s.Forms.Mode() == forms.ModeClosed {
		s.logger.Warn(ctx, "Map click with no open form", nil)
		return nil, errors.New("no form is open; open a form before clicking the map")
	}

	lat, err := strconv.ParseFloat(cmd.Args[0], 64)
	if err != nil {
		s.logger.Error(ctx, "Invalid latitude", log.Fields{"value": cmd.Args[0]})
		return nil, fmt.Errorf("invalid latitude: %s", cmd.Args[0])
	}
	lng, err := strconv.ParseFloat(cmd.Args[1], 64)
	if err != nil {
		s.logger.Error(ctx, "Invalid longitude", log.Fields{"value": cmd.Args[1]})
		return nil, fmt.Errorf("invalid longitude: %s", cmd.Args[1])
	}

	s.MapView.Click(model.Coordinates{Lat: lat, Lng: lng})
	return fmt.Sprintf("Marker placed at %.4f, %.4f", lat, lng), nil
}

// handleMapShow handles the map show command
func handleMapShow(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling map show command", nil)

	center, zoom := s.MapView.Center()
	out := fmt.Sprintf("Map centered at %.4f, %.4f (zoom %d)", center.Lat, center.Lng, zoom)
	if marker, placed := s.MapView.Marker(); placed {
		out += fmt.Sprintf("\nMarker at %.4f, %.4f", marker.Lat, marker.Lng)
	} else {
		out += "\nNo marker placed"
	}
	return out, nil
}
