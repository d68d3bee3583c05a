package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errDefinitionIDMissing       = errors.New("model builder: form id is required")
	errDefinitionEndpointMissing = errors.New("model builder: form endpoint is required")
	errDefinitionSectionsMissing = errors.New("model builder: form declares no sections")
)

func validateDefinition(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return errDefinitionIDMissing
	}
	if strings.TrimSpace(def.Endpoint) == "" {
		return errDefinitionEndpointMissing
	}
	if len(def.Sections) == 0 {
		return errDefinitionSectionsMissing
	}

	sections := make(map[string]struct{}, len(def.Sections))
	for _, section := range def.Sections {
		if err := validateSection(section); err != nil {
			return fmt.Errorf("model builder: section %q: %w", section.Name, err)
		}
		if _, dup := sections[section.Name]; dup {
			return fmt.Errorf("model builder: duplicate section %q", section.Name)
		}
		sections[section.Name] = struct{}{}
	}
	return nil
}

func validateSection(section SectionDefinition) error {
	if strings.TrimSpace(section.Name) == "" {
		return errors.New("name is required")
	}
	if len(section.Fields) == 0 {
		return errors.New("section declares no fields")
	}
	if section.MinEntries < 0 {
		return errors.New("minEntries cannot be negative")
	}
	if section.MinEntries > 0 && !section.Repeated {
		return errors.New("minEntries requires a repeated section")
	}

	fields := make(map[string]FieldDefinition, len(section.Fields))
	for _, field := range section.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return errors.New("field name is required")
		}
		if _, dup := fields[field.Name]; dup {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		if field.MaxWords < 0 {
			return fmt.Errorf("field %q: maxWords cannot be negative", field.Name)
		}
		fields[field.Name] = field
	}

	for _, field := range section.Fields {
		if field.RequiredWhen == "" {
			continue
		}
		flag, ok := fields[field.RequiredWhen]
		if !ok {
			return fmt.Errorf("field %q: requiredWhen references unknown field %q", field.Name, field.RequiredWhen)
		}
		if flag.Type != FieldTypeBoolean {
			return fmt.Errorf("field %q: requiredWhen field %q must be boolean", field.Name, field.RequiredWhen)
		}
	}
	return nil
}
