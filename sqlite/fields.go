package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"reflect"
)

// JSONBlob type for marshaling/unmarshaling inner type to json.
// Data must be a pointer when scanning.
type JSONBlob struct {
	Data interface{}
}

// Scan implements interface.
func (blob *JSONBlob) Scan(value interface{}) error {
	if value == nil || blob.Data == nil || reflect.ValueOf(blob.Data).IsNil() {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("not a byte slice")
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, blob.Data)
}

// Value implements interface.
func (blob *JSONBlob) Value() (driver.Value, error) {
	if blob.Data == nil {
		return nil, nil
	}
	switch reflect.ValueOf(blob.Data).Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		if reflect.ValueOf(blob.Data).IsNil() {
			return nil, nil
		}
	}
	return json.Marshal(blob.Data)
}
