package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is an ordered list of labels persisted as a JSON string array in a
// single text column. A nil list is stored as SQL NULL.
type Tags []string

// EncodeTags serializes tags into their column representation.
func EncodeTags(tags []string) (*string, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	encoded := string(data)
	return &encoded, nil
}

// DecodeTags parses a stored column value. Malformed input is an error and
// nothing is partially recovered.
func DecodeTags(stored *string) ([]string, error) {
	if stored == nil {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*stored), &tags); err != nil {
		return nil, fmt.Errorf("decode tags %q: %w", *stored, err)
	}
	if tags == nil {
		// "null" in the column decodes the same as SQL NULL
		return nil, nil
	}
	return tags, nil
}

// Value implements the driver.Valuer interface
func (t Tags) Value() (driver.Value, error) {
	encoded, err := EncodeTags(t)
	if err != nil || encoded == nil {
		return nil, err
	}
	return *encoded, nil
}

// Scan implements the sql.Scanner interface
func (t *Tags) Scan(value interface{}) error {
	var stored *string
	switch v := value.(type) {
	case nil:
	case string:
		stored = &v
	case []byte:
		s := string(v)
		stored = &s
	default:
		return fmt.Errorf("decode tags: unsupported column type %T", value)
	}

	tags, err := DecodeTags(stored)
	if err != nil {
		return err
	}
	*t = tags
	return nil
}
