package model

// EssayField is one free-text response with a word limit.
type EssayField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	MaxWords int    `json:"maxWords"`
	Text     string `json:"text"`
}

// Essays is the ordered set of essay responses of a form variant. The zero
// value holds no essays.
type Essays struct {
	fields []EssayField
}

// NewEssays returns an Essays value with the given fields in order.
func NewEssays(fields ...EssayField) Essays {
	return Essays{fields: append([]EssayField(nil), fields...)}
}

// Fields returns a copy of the essay fields.
func (e Essays) Fields() []EssayField {
	return append([]EssayField(nil), e.fields...)
}

// Field returns the named essay.
func (e Essays) Field(name string) (EssayField, bool) {
	for _, field := range e.fields {
		if field.Name == name {
			return field, true
		}
	}
	return EssayField{}, false
}

// Limits maps essay names to their word limits.
func (e Essays) Limits() map[string]int {
	limits := make(map[string]int, len(e.fields))
	for _, field := range e.fields {
		limits[field.Name] = field.MaxWords
	}
	return limits
}

// Cleared returns a copy with every response emptied.
func (e Essays) Cleared() Essays {
	out := e.Fields()
	for i := range out {
		out[i].Text = ""
	}
	return Essays{fields: out}
}

// With returns a copy of e with the named essay text replaced. Word limits
// are enforced by the section controller, not here.
func (e Essays) With(field string, value any) (Essays, error) {
	str, err := asString("essays", field, value)
	if err != nil {
		return e, err
	}
	for i := range e.fields {
		if e.fields[i].Name != field {
			continue
		}
		out := e.Fields()
		out[i].Text = str
		return Essays{fields: out}, nil
	}
	return e, unknownField("essays", field)
}

func (e Essays) Pairs() []Pair {
	pairs := make([]Pair, 0, len(e.fields))
	for _, field := range e.fields {
		pairs = append(pairs, Pair{Key: field.Name, Label: field.Label, Value: field.Text})
	}
	return pairs
}

func (e Essays) Rows() [][]Pair { return [][]Pair{e.Pairs()} }

func (Essays) Repeated() bool { return false }
