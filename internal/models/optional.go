package models

import "encoding/json"

// Optional records whether a value was supplied at all, as opposed to supplied empty.
type Optional[T any] struct {
	Value   T
	Present bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalFromPtr maps a nil pointer to an absent value.
func OptionalFromPtr[T any](ptr *T) Optional[T] {
	if ptr == nil {
		return None[T]()
	}
	return Some(*ptr)
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

func (o Optional[T]) OrElse(fallback T) T {
	if o.Present {
		return o.Value
	}
	return fallback
}

// Ptr returns nil for an absent value. Used when handing values to nullable columns.
func (o Optional[T]) Ptr() *T {
	if !o.Present {
		return nil
	}
	v := o.Value
	return &v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
