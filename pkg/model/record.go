package model

import (
	"encoding/json"
	"sort"
)

// SubmissionRecord is the flat, read-only payload delivered to a gateway.
// Values are strings or bools.
type SubmissionRecord struct {
	values map[string]any
}

// RecordBuilder accumulates values for a SubmissionRecord.
type RecordBuilder struct {
	values map[string]any
}

// NewRecordBuilder returns an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{values: make(map[string]any)}
}

// String stores a text value, replacing any previous value under key.
func (b *RecordBuilder) String(key, value string) *RecordBuilder {
	b.values[key] = value
	return b
}

// Bool stores a boolean value, replacing any previous value under key.
func (b *RecordBuilder) Bool(key string, value bool) *RecordBuilder {
	b.values[key] = value
	return b
}

// Build returns a record holding a snapshot of the accumulated values.
func (b *RecordBuilder) Build() SubmissionRecord {
	values := make(map[string]any, len(b.values))
	for key, value := range b.values {
		values[key] = value
	}
	return SubmissionRecord{values: values}
}

// Get returns the value stored under key.
func (r SubmissionRecord) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// String returns the text stored under key, or "" when absent or not text.
func (r SubmissionRecord) String(key string) string {
	str, _ := r.values[key].(string)
	return str
}

// Bool returns the flag stored under key, or false when absent or not a flag.
func (r SubmissionRecord) Bool(key string) bool {
	b, _ := r.values[key].(bool)
	return b
}

// Keys returns the record keys sorted alphabetically.
func (r SubmissionRecord) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for key := range r.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of keys.
func (r SubmissionRecord) Len() int { return len(r.values) }

// Values returns a copy of the underlying map.
func (r SubmissionRecord) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}

// Equal reports whether both records hold the same keys and values.
func (r SubmissionRecord) Equal(other SubmissionRecord) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for key, value := range r.values {
		otherValue, ok := other.values[key]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as a flat JSON object.
func (r SubmissionRecord) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}
