package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONText stores an arbitrary JSON document in a TEXT column.
type JSONText json.RawMessage

// Scan implements the sql.Scanner interface for JSONText
func (j *JSONText) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case string:
		*j = JSONText(v)
		return nil
	case []byte:
		*j = JSONText(append([]byte(nil), v...))
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into JSONText", value)
	}
}

// Value implements the driver.Valuer interface for JSONText
func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	if !json.Valid(j) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	return string(j), nil
}

// MarshalJSON returns the stored document as-is.
func (j JSONText) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the document as-is.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	*j = JSONText(append([]byte(nil), data...))
	return nil
}
