package model

// Pair is one labelled field value in display order. Value holds either a
// string or a bool.
type Pair struct {
	Key      string
	Label    string
	Value    any
	Optional bool
}

// Empty reports whether the pair carries no user input.
func (p Pair) Empty() bool {
	switch v := p.Value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	default:
		return v == nil
	}
}

// Text returns the string value, or "" for non-string values.
func (p Pair) Text() string {
	str, _ := p.Value.(string)
	return str
}

// Flag returns the bool value, or false for non-bool values.
func (p Pair) Flag() bool {
	b, _ := p.Value.(bool)
	return b
}

// Find returns the pair with the given key.
func Find(pairs []Pair, key string) (Pair, bool) {
	for _, pair := range pairs {
		if pair.Key == key {
			return pair, true
		}
	}
	return Pair{}, false
}

// Entry is implemented by every list entry type.
type Entry interface {
	Pairs() []Pair
}

// State is the read side of a section: scalar sections report a single row,
// list sections one row per entry.
type State interface {
	Rows() [][]Pair
	Repeated() bool
}

// Entries is the state of a list section.
type Entries[E Entry] []E

// Rows implements State.
func (e Entries[E]) Rows() [][]Pair {
	rows := make([][]Pair, 0, len(e))
	for _, entry := range e {
		rows = append(rows, entry.Pairs())
	}
	return rows
}

// Repeated implements State.
func (Entries[E]) Repeated() bool { return true }

// Clone returns a copy backed by a fresh array.
func (e Entries[E]) Clone() Entries[E] {
	if e == nil {
		return nil
	}
	out := make(Entries[E], len(e))
	copy(out, e)
	return out
}
