// Package dto holds the JSON shapes exchanged over HTTP and the mapping
// helpers between them and the model entities.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the wire format for dates: ISO-8601 local date-time
// without a zone offset.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Accepted input layouts, tried in order.
var localDateTimeLayouts = []string{
	time.RFC3339Nano,
	LocalDateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// LocalDateTime is a timestamp rendered without a zone. Values are kept in UTC.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime returns nil for a nil time so optional dates stay optional.
func NewLocalDateTime(t *time.Time) *LocalDateTime {
	if t == nil {
		return nil
	}
	return &LocalDateTime{Time: t.UTC()}
}

// TimePtr converts back to the model representation.
func (d *LocalDateTime) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time.UTC()
	return &t
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(LocalDateTimeLayout))
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseLocalDateTime accepts RFC 3339, ISO local date-time or a bare date.
func ParseLocalDateTime(s string) (time.Time, error) {
	for _, layout := range localDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, LocalDateTimeLayout)
}
