package validation

import "encoding/json"

// Optional carries a JSON field value together with whether the key was
// present in the payload at all. A present null decodes to Set with the zero
// Value.
//
//	type Patch struct {
//	    Title validation.Optional[string] `json:"title"`
//	}
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders the value, or null when the field was absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
