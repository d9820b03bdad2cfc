package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/yukikurage/schedule-api/internal/utils"
)

// PagedResponse wraps a page of items with its pagination metadata
type PagedResponse struct {
	Data       interface{}              `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
	ID      uint64 `json:"id"`
}

// OptionalID is a reference id that clients may send as a number, a numeric
// string, an empty string or null. Empty and null leave it unset.
type OptionalID struct {
	Value *uint64
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Value = nil

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	raw := string(trimmed)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		raw = string(bytes.TrimSpace([]byte(raw)))
		if raw == "" {
			return nil
		}
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(uint64(0))}
	}
	o.Value = &id
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatUint(*o.Value, 10)), nil
}
