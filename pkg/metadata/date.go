package metadata

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day kept in YYYY-MM-DD form.
type Date string

func NewDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", fmt.Errorf("date %q must use the YYYY-MM-DD format", value)
	}
	return Date(value), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) String() string {
	return string(d)
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = DateOf(v)
	case []byte:
		*d = truncateDate(string(v))
	case string:
		*d = truncateDate(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = truncateDate(raw)
	return nil
}

// PostgREST may hand dates back as full timestamps.
func truncateDate(value string) Date {
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return Date(value)
}
