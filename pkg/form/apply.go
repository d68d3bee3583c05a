package form

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

type postedField struct {
	section section.Name
	index   int
	field   string
	value   string
}

// Apply replaces the session state with posted form values. Keys use the
// dotted paths produced by Snapshot.Values ("personal.email",
// "siblings.0.inSchool"); keys outside the known sections are ignored.
// List indices are compacted in ascending order. Checkbox fields are true
// when any of "on", "true", "1" or "yes" is posted and false when absent;
// they are applied after the other fields of their section or entry.
//
// Edits rejected by the section controllers (over-limit essays, unknown
// fields) are returned as issues and leave the field empty.
func (s *Session) Apply(values map[string][]string) validation.Issues {
	s.Reset()

	var scalars []postedField
	lists := make(map[section.Name]map[int][]postedField)
	for key, posted := range values {
		field, ok := parseKey(key)
		if !ok || len(posted) == 0 {
			continue
		}
		field.value = posted[len(posted)-1]
		if field.index < 0 {
			scalars = append(scalars, field)
			continue
		}
		if lists[field.section] == nil {
			lists[field.section] = make(map[int][]postedField)
		}
		lists[field.section][field.index] = append(lists[field.section][field.index], field)
	}

	issues := validation.Issues{}
	sort.Slice(scalars, func(i, j int) bool {
		if scalars[i].section != scalars[j].section {
			return scalars[i].section < scalars[j].section
		}
		return s.fieldBefore(scalars[i], scalars[j])
	})
	for _, field := range scalars {
		patch := section.Set{Field: field.field, Value: s.coerce(field)}
		s.record(issues, field, field.index, s.Update(field.section, patch))
	}

	for _, name := range section.Names() {
		entries, ok := lists[name]
		if !ok {
			continue
		}
		indices := make([]int, 0, len(entries))
		for index := range entries {
			indices = append(indices, index)
		}
		sort.Ints(indices)

		for position, index := range indices {
			if err := s.Update(name, section.Add{}); err != nil {
				s.logger.Debug("ignoring posted entry", zap.String("section", string(name)), zap.Error(err))
				break
			}
			fields := s.withUncheckedFlags(name, index, entries[index])
			sort.Slice(fields, func(i, j int) bool { return s.fieldBefore(fields[i], fields[j]) })
			for _, field := range fields {
				patch := section.SetEntry{Index: position, Field: field.field, Value: s.coerce(field)}
				s.record(issues, field, position, s.Update(name, patch))
			}
		}
	}

	if issues.Empty() {
		return nil
	}
	return issues
}

// withUncheckedFlags adds an empty value for every checkbox of the entry
// that was not posted, since browsers omit unchecked boxes.
func (s *Session) withUncheckedFlags(name section.Name, index int, fields []postedField) []postedField {
	sec, ok := s.form.Section(string(name))
	if !ok {
		return fields
	}
	posted := make(map[string]bool, len(fields))
	for _, field := range fields {
		posted[field.field] = true
	}
	for _, def := range sec.Fields {
		if def.Type != model.FieldTypeBoolean || posted[def.Name] {
			continue
		}
		fields = append(fields, postedField{section: name, index: index, field: def.Name})
	}
	return fields
}

// fieldBefore orders fields by name with checkboxes last.
func (s *Session) fieldBefore(a, b postedField) bool {
	aFlag, bFlag := s.isFlag(a), s.isFlag(b)
	if aFlag != bFlag {
		return bFlag
	}
	return a.field < b.field
}

func (s *Session) isFlag(field postedField) bool {
	def, ok := s.fieldDef(field)
	return ok && def.Type == model.FieldTypeBoolean
}

func (s *Session) record(issues validation.Issues, field postedField, position int, err error) {
	if err == nil {
		return
	}
	path := string(field.section) + "."
	if position >= 0 {
		path += strconv.Itoa(position) + "."
	}
	path += field.field

	switch {
	case errors.Is(err, section.ErrWordLimitExceeded):
		if def, ok := s.fieldDef(field); ok && def.MaxWords > 0 {
			issues.Add(path, validation.Validate(field.value, validation.MaxWords(def.MaxWords)).Message)
			return
		}
		issues.Add(path, "Word limit exceeded")
	case errors.Is(err, model.ErrUnknownField):
		s.logger.Debug("ignoring unknown posted field", zap.String("path", path))
	default:
		issues.Add(path, "Invalid value")
	}
}

func (s *Session) fieldDef(field postedField) (model.Field, bool) {
	sec, ok := s.form.Section(string(field.section))
	if !ok {
		return model.Field{}, false
	}
	return sec.Field(field.field)
}

// coerce converts the posted string to the type of the target field.
// Unknown fields pass through as strings so the controller reports them.
func (s *Session) coerce(field postedField) any {
	if s.isFlag(field) {
		return parseFlag(field.value)
	}
	return field.value
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func parseKey(key string) (postedField, bool) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return postedField{}, false
	}
	name, err := section.ParseName(parts[0])
	if err != nil {
		return postedField{}, false
	}
	switch len(parts) {
	case 2:
		return postedField{section: name, index: -1, field: parts[1]}, true
	case 3:
		index, err := strconv.Atoi(parts[1])
		if err != nil || index < 0 {
			return postedField{}, false
		}
		return postedField{section: name, index: index, field: parts[2]}, true
	default:
		return postedField{}, false
	}
}

func sectionName(raw string) section.Name {
	return section.Name(raw)
}
