package models

import (
	"encoding/json"

	"github.com/mycotrack/mycotrack/pkg/jsonutil"
)

// Optional holds a value that the service may omit.
// A missing key, JSON null and an empty string all decode to an unset Optional.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsZero reports whether the Optional is unset. Used by the omitzero json option.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// OrElse returns the value, or def when unset.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// MarshalJSON writes null for an unset Optional.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes the value. Numeric targets accept string-encoded numbers.
func (o *Optional[T]) UnmarshalJSON(raw []byte) error {
	var zero T
	o.value, o.set = zero, false

	if jsonutil.IsBlank(raw) {
		return nil
	}

	switch p := any(&o.value).(type) {
	case *float64:
		f, ok, err := jsonutil.FlexibleFloat(raw)
		if err != nil {
			return err
		}
		*p, o.set = f, ok
		return nil
	case *int:
		n, ok, err := jsonutil.FlexibleInt(raw)
		if err != nil {
			return err
		}
		*p, o.set = n, ok
		return nil
	}

	if err := json.Unmarshal(raw, &o.value); err != nil {
		return err
	}
	o.set = true
	return nil
}
