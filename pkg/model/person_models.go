// Package model defines the data structures used throughout the Astroscope application.
package model

// Person represents one subject of chart generation. Birthdate and Birthtime
// are kept as composite strings ("YYYY-MM-DD" and "HH:MM"); the wire format
// carries the decomposed numeric fields instead (see PersonPayload).
type Person struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Birthdate string  `json:"birthdate"`
	Birthtime string  `json:"birthtime"`
	City      string  `json:"city"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	TzStr     string  `json:"tz_str"`
}

// HasCoordinates reports whether both coordinates have been explicitly set.
// A person cannot be submitted until coordinates are present.
func (p Person) HasCoordinates() bool {
	return p.Lat != 0 && p.Lng != 0
}

// PersonPayload is the flattened wire representation of a person, as expected
// by the backend user and chart endpoints.
type PersonPayload struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	City   string  `json:"city"`
	TzStr  string  `json:"tz_str"`
}

// PairPayload wraps two flattened persons for the two-person chart endpoints.
type PairPayload struct {
	Person1 PersonPayload `json:"person1"`
	Person2 PersonPayload `json:"person2"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}
