package dto

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present and, if so, whether it was null.
// The zero value means the field was omitted.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// IsNull reports a field that was present as null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null builds a present, null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
