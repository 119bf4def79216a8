package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and CSV format of every calendar date.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, time.RFC3339, "2006/01/02", "01/02/2006"}

// Date is a calendar date without time of day, stored in a DATE column.
type Date struct {
	time.Time
}

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD and a few common variants.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the whole days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	from := DateOf(d.Time)
	to := DateOf(other.Time)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// MarshalJSON returns the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD" or an RFC 3339 timestamp
func (d *Date) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("nil pointer")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements the sql.Scanner interface
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// OptionalDate distinguishes an absent JSON field from an explicit null.
// An empty string is treated like null.
type OptionalDate struct {
	Set   bool
	Value *Date
}

// SetDate returns an OptionalDate carrying d.
func SetDate(d Date) OptionalDate {
	return OptionalDate{Set: true, Value: &d}
}

// ClearDate returns an OptionalDate that explicitly nulls the field.
func ClearDate() OptionalDate {
	return OptionalDate{Set: true}
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}
	var d Date
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

func (o OptionalDate) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}
