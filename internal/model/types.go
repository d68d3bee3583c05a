package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
)

// Formats refine how a string field is collected and validated.
const (
	FormatDate     = "date"
	FormatEmail    = "email"
	FormatPhone    = "tel"
	FormatTextArea = "textarea"
)

const (
	ValidationRuleRequired      = "required"
	ValidationRuleEmail         = "email"
	ValidationRuleDateNotFuture = "dateNotFuture"
	ValidationRuleMaxWords      = "maxWords"
	ValidationRulePhone         = "phone"
	ValidationRulePattern       = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Word limits encode their threshold in Params["value"] while pattern rules
// preserve the expression in Params["pattern"] and an optional
// Params["message"]. Values are strings to keep JSON snapshots stable.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// FieldDefinition declares one input of a form section.
type FieldDefinition struct {
	Name        string           `json:"name" yaml:"name"`
	Type        FieldType        `json:"type,omitempty" yaml:"type"`
	Format      string           `json:"format,omitempty" yaml:"format"`
	Label       string           `json:"label,omitempty" yaml:"label"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder"`
	Description string           `json:"description,omitempty" yaml:"description"`
	Required    bool             `json:"required,omitempty" yaml:"required"`
	// RequiredWhen names a boolean sibling field that makes this field
	// required when it is true.
	RequiredWhen string           `json:"requiredWhen,omitempty" yaml:"requiredWhen"`
	MaxWords     int              `json:"maxWords,omitempty" yaml:"maxWords"`
	Validations  []ValidationRule `json:"validations,omitempty" yaml:"validations"`
}

// SectionDefinition declares a logical group of fields. Repeated sections hold
// a list of entries sharing the same fields.
type SectionDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title,omitempty" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description"`
	Repeated    bool              `json:"repeated,omitempty" yaml:"repeated"`
	MinEntries  int               `json:"minEntries,omitempty" yaml:"minEntries"`
	AddLabel    string            `json:"addLabel,omitempty" yaml:"addLabel"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
}

// Definition describes a complete application form variant.
type Definition struct {
	ID          string              `json:"id" yaml:"id"`
	Title       string              `json:"title" yaml:"title"`
	Description string              `json:"description,omitempty" yaml:"description"`
	Endpoint    string              `json:"endpoint" yaml:"endpoint"`
	Sections    []SectionDefinition `json:"sections" yaml:"sections"`
}

// Field models an individual input inside a generated form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name         string            `json:"name"`
	Type         FieldType         `json:"type"`
	Format       string            `json:"format,omitempty"`
	Required     bool              `json:"required"`
	RequiredWhen string            `json:"requiredWhen,omitempty"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty"`
	MaxWords     int               `json:"maxWords,omitempty"`
	Validations  []ValidationRule  `json:"validations,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Section groups fields inside a FormModel.
type Section struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Repeated    bool    `json:"repeated,omitempty"`
	MinEntries  int     `json:"minEntries,omitempty"`
	AddLabel    string  `json:"addLabel,omitempty"`
	Fields      []Field `json:"fields"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Sections    []Section         `json:"sections"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Section returns the named section and whether it exists.
func (f FormModel) Section(name string) (Section, bool) {
	for _, section := range f.Sections {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}

// Field returns the named field and whether it exists.
func (s Section) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
