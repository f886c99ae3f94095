package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Optional holds a value that may be absent. Set distinguishes a field that
// was supplied (possibly as null) from one that was left out.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// IsZero reports whether the value is absent, so `omitzero` drops it.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UnmarshalJSON marks the field as supplied. A JSON null leaves the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON encodes the value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// TaskPatch is a partial task update. Only supplied fields are written;
// a supplied nil DueDate or empty Category clears the stored value.
type TaskPatch struct {
	Completed Optional[bool]
	Text      Optional[string]
	DueDate   Optional[*time.Time]
	Category  Optional[Category]
}

// IsEmpty reports whether no field was supplied.
func (p TaskPatch) IsEmpty() bool {
	return !p.Completed.Set && !p.Text.Set && !p.DueDate.Set && !p.Category.Set
}

// Apply writes the supplied fields onto t.
func (p TaskPatch) Apply(t *Task) {
	if v, ok := p.Completed.Get(); ok {
		t.Completed = v
	}
	if v, ok := p.Text.Get(); ok {
		t.Text = v
	}
	if v, ok := p.DueDate.Get(); ok {
		t.DueDate = v
	}
	if v, ok := p.Category.Get(); ok {
		t.Category = v
	}
}

// SubtaskPatch is a partial subtask update.
type SubtaskPatch struct {
	Completed Optional[bool]
	Text      Optional[string]
}

// IsEmpty reports whether no field was supplied.
func (p SubtaskPatch) IsEmpty() bool {
	return !p.Completed.Set && !p.Text.Set
}

// Apply writes the supplied fields onto s.
func (p SubtaskPatch) Apply(s *Subtask) {
	if v, ok := p.Completed.Get(); ok {
		s.Completed = v
	}
	if v, ok := p.Text.Get(); ok {
		s.Text = v
	}
}
