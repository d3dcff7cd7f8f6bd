package models

import "encoding/json"

// Optional is a JSON field that remembers whether the key was present in the
// request body at all, and if so whether it was an explicit null. Partial
// update bodies need the three-way distinction: absent keeps the current
// value, null clears it, anything else sets it.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the body, which is what
// makes Set trustworthy.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Ptr returns the value as a pointer, or nil when the field was absent or
// explicitly null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
