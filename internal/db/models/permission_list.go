package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedListValue is returned when scanning a column that is neither
// text nor bytes into a list type.
var ErrUnsupportedListValue = errors.New("unsupported database value for list column")

// PermissionList is a user's explicit permission key list, persisted as a
// JSON string array in a text column. A NULL column scans to a nil pointer
// on the owning model, which is how "never saved" is distinguished from a
// saved-but-empty set.
type PermissionList []string

// Value implements driver.Valuer, encoding the list as JSON.
func (l PermissionList) Value() (driver.Value, error) {
	out, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode permission list: %w", err)
	}

	return string(out), nil
}

// Scan implements sql.Scanner, decoding a JSON string array.
func (l *PermissionList) Scan(src any) error {
	return scanJSONList(src, (*[]string)(l))
}

// StringList is a generic JSON-encoded string array column, used for small
// multi-select fields like sandwich types.
type StringList []string

// Value implements driver.Valuer, encoding the list as JSON.
func (l StringList) Value() (driver.Value, error) {
	out, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}

	return string(out), nil
}

// Scan implements sql.Scanner, decoding a JSON string array.
func (l *StringList) Scan(src any) error {
	return scanJSONList(src, (*[]string)(l))
}

func scanJSONList(src any, dst *[]string) error {
	switch v := src.(type) {
	case nil:
		*dst = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedListValue, src)
	}
}
