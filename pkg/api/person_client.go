package api

import (
	"context"
	"net/http"
	"strconv"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

const usersPath = "/users/"

// PersonList fetches all person records from the backend and normalizes each
// one. The backend response may be partially malformed; every missing or
// non-numeric date-time subfield defaults to zero and every missing text
// field to an empty string (or the configured default timezone), so the
// in-memory store always holds well-formed records.
func (c *Client) PersonList(ctx context.Context) ([]model.Person, error) {
	c.logger.Info(ctx, "Fetching person list", nil)

	var raw []map[string]interface{}
	if err := c.getJSON(ctx, usersPath, &raw); err != nil {
		c.logger.Error(ctx, "Failed to fetch person list", log.Fields{"error": err})
		return nil, err
	}

	people := make([]model.Person, 0, len(raw))
	for index, record := range raw {
		people = append(people, c.normalizeRecord(record, index))
	}

	c.logger.Info(ctx, "Person list fetched", log.Fields{"count": len(people)})
	return people, nil
}

// PersonCreate sends a new person record to the backend.
func (c *Client) PersonCreate(ctx context.Context, payload model.PersonPayload) error {
	c.logger.Info(ctx, "Creating person", log.Fields{"id": payload.ID, "name": payload.Name})
	return c.send(ctx, http.MethodPost, usersPath, payload)
}

// PersonUpdate replaces an existing person record on the backend. The full
// record is sent; updates are a replace, not a partial patch.
func (c *Client) PersonUpdate(ctx context.Context, id string, payload model.PersonPayload) error {
	c.logger.Info(ctx, "Updating person", log.Fields{"id": id})
	return c.send(ctx, http.MethodPut, usersPath+id, payload)
}

// PersonDelete removes a person record from the backend.
func (c *Client) PersonDelete(ctx context.Context, id string) error {
	c.logger.Info(ctx, "Deleting person", log.Fields{"id": id})
	return c.send(ctx, http.MethodDelete, usersPath+id, nil)
}

// normalizeRecord converts one raw backend record into a well-formed person.
func (c *Client) normalizeRecord(record map[string]interface{}, index int) model.Person {
	year := intField(record, "year")
	month := intField(record, "month")
	day := intField(record, "day")
	hour := intField(record, "hour")
	minute := intField(record, "minute")

	tz := textField(record, "tz_str")
	if tz == "" {
		tz = c.defaultTimezone
	}

	return model.Person{
		ID:        idField(record, index),
		Name:      textField(record, "name"),
		Birthdate: ComposeDate(year, month, day),
		Birthtime: ComposeTime(hour, minute),
		City:      textField(record, "city"),
		Lat:       floatField(record, "lat"),
		Lng:       floatField(record, "lng"),
		TzStr:     tz,
	}
}

// intField extracts a numeric field as int, defaulting to zero when the field
// is missing or not a number.
func intField(record map[string]interface{}, key string) int {
	if v, ok := record[key].(float64); ok {
		return int(v)
	}
	return 0
}

// floatField extracts a numeric field, defaulting to zero.
func floatField(record map[string]interface{}, key string) float64 {
	if v, ok := record[key].(float64); ok {
		return v
	}
	return 0
}

// textField extracts a string field, defaulting to an empty string.
func textField(record map[string]interface{}, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}

// idField extracts the record id as a string. Numeric ids are formatted
// without a decimal point; a missing id falls back to the record's position
// in the response.
func idField(record map[string]interface{}, index int) string {
	switch v := record["id"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.Itoa(index)
}
