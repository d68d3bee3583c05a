package model

import (
	"strconv"
	"strings"
)

// Builder converts form definitions into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if method := strings.TrimSpace(options.Method); method != "" {
		opts.Method = strings.ToUpper(method)
	}
	return &Builder{opts: opts}
}

// Build transforms a Definition into a FormModel suitable for rendering.
// Labels are derived from field names when absent and the declarative
// constraints (required, format, maxWords) are expanded into validation rules.
func (b *Builder) Build(def Definition) (FormModel, error) {
	if err := validateDefinition(def); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Endpoint:    def.Endpoint,
		Method:      b.opts.Method,
		Metadata:    map[string]string{},
	}
	if form.Title == "" {
		form.Title = b.opts.Labeler(def.ID)
	}

	for _, sectionDef := range def.Sections {
		form.Sections = append(form.Sections, b.section(sectionDef))
	}

	form.Metadata["sections"] = strconv.Itoa(len(form.Sections))
	return form, nil
}

func (b *Builder) section(def SectionDefinition) Section {
	section := Section{
		Name:        def.Name,
		Title:       def.Title,
		Description: def.Description,
		Repeated:    def.Repeated,
		MinEntries:  def.MinEntries,
		AddLabel:    def.AddLabel,
	}
	if section.Title == "" {
		section.Title = b.opts.Labeler(def.Name)
	}
	if section.Repeated && section.AddLabel == "" {
		section.AddLabel = "Add " + section.Title
	}
	for _, fieldDef := range def.Fields {
		section.Fields = append(section.Fields, b.field(fieldDef))
	}
	return section
}

func (b *Builder) field(def FieldDefinition) Field {
	field := Field{
		Name:         def.Name,
		Type:         def.Type,
		Format:       strings.ToLower(strings.TrimSpace(def.Format)),
		Required:     def.Required,
		RequiredWhen: def.RequiredWhen,
		Label:        def.Label,
		Placeholder:  def.Placeholder,
		Description:  def.Description,
		MaxWords:     def.MaxWords,
	}
	if field.Type == "" {
		field.Type = FieldTypeString
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(def.Name)
	}
	if field.MaxWords > 0 && field.Format == "" {
		field.Format = FormatTextArea
	}

	applyValidations(&field)
	field.Validations = append(field.Validations, cloneRules(def.Validations)...)
	if len(field.Validations) == 0 {
		field.Validations = nil
	}

	applyFormatHints(&field)
	if len(field.Metadata) == 0 {
		field.Metadata = nil
	}
	return field
}

func applyValidations(field *Field) {
	if field.Required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	if field.RequiredWhen != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleRequired,
			Params: map[string]string{"when": field.RequiredWhen},
		})
	}

	switch field.Format {
	case FormatEmail:
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleEmail})
	case FormatPhone:
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRulePhone})
	case FormatDate:
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleDateNotFuture})
	}

	if field.MaxWords > 0 {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxWords,
			Params: map[string]string{"value": strconv.Itoa(field.MaxWords)},
		})
	}
}

func applyFormatHints(field *Field) {
	var inputType string
	switch {
	case field.Type == FieldTypeBoolean:
		inputType = "checkbox"
	case field.Format == FormatDate:
		inputType = "date"
	case field.Format == FormatEmail:
		inputType = "email"
	case field.Format == FormatPhone:
		inputType = "tel"
	case field.Format == FormatTextArea:
		inputType = "textarea"
	default:
		inputType = "text"
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string, 1)
	}
	field.Metadata["inputType"] = inputType
}

func cloneRules(rules []ValidationRule) []ValidationRule {
	if len(rules) == 0 {
		return nil
	}
	out := make([]ValidationRule, len(rules))
	for i, rule := range rules {
		out[i] = ValidationRule{Kind: rule.Kind}
		if len(rule.Params) > 0 {
			out[i].Params = make(map[string]string, len(rule.Params))
			for key, value := range rule.Params {
				out[i].Params[key] = value
			}
		}
	}
	return out
}
