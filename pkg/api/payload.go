package api

import (
	"fmt"
	"strconv"
	"strings"

	"astroscope/pkg/model"
)

// ComposeDate builds the composite birth date string from its parts, with
// month and day zero-padded to two digits.
func ComposeDate(year, month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

// ComposeTime builds the composite birth time string from its parts.
func ComposeTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SplitDate splits a composite "YYYY-MM-DD" string into its numeric parts.
// Missing or non-numeric parts default to zero.
func SplitDate(date string) (year, month, day int) {
	parts := strings.Split(date, "-")
	if len(parts) > 0 {
		year, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		day, _ = strconv.Atoi(parts[2])
	}
	return year, month, day
}

// SplitTime splits a composite "HH:MM" string into its numeric parts.
// Missing or non-numeric parts default to zero.
func SplitTime(t string) (hour, minute int) {
	parts := strings.Split(t, ":")
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}

// Flatten converts a person record into its flattened wire representation by
// splitting the composite date and time strings.
func Flatten(person model.Person) model.PersonPayload {
	year, month, day := SplitDate(person.Birthdate)
	hour, minute := SplitTime(person.Birthtime)

	return model.PersonPayload{
		ID:     person.ID,
		Name:   person.Name,
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Lat:    person.Lat,
		Lng:    person.Lng,
		City:   person.City,
		TzStr:  person.TzStr,
	}
}
