package form

import (
	"strconv"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

const minEntriesMessage = "Add at least one entry"

// Validate runs the required-field gate over the current snapshot. Issues
// are keyed by dotted path; list sections below their minimum are reported
// under the section name.
func (s *Session) Validate() validation.Issues {
	return ValidateSnapshot(s.form, s.Snapshot(), s.clock)
}

// ValidateSnapshot checks snapshot against the rules declared by form.
func ValidateSnapshot(form model.FormModel, snapshot Snapshot, clock validation.Clock) validation.Issues {
	issues := validation.Issues{}
	states := snapshot.Sections()

	for _, sec := range form.Sections {
		state, ok := states[sectionName(sec.Name)]
		if !ok {
			continue
		}
		rows := state.Rows()
		if sec.Repeated && len(rows) < sec.MinEntries {
			issues.Add(sec.Name, minEntriesMessage)
		}
		for index, row := range rows {
			prefix := sec.Name + "."
			if sec.Repeated {
				prefix += strconv.Itoa(index) + "."
			}
			validateRow(issues, prefix, sec, row, clock)
		}
	}

	if issues.Empty() {
		return nil
	}
	return issues
}

func validateRow(issues validation.Issues, prefix string, sec model.Section, row []model.Pair, clock validation.Clock) {
	for _, field := range sec.Fields {
		if field.Type == model.FieldTypeBoolean {
			continue
		}
		pair, ok := model.Find(row, field.Name)
		if !ok {
			continue
		}
		rules := validation.FromModel(field, clock)
		if field.RequiredWhen != "" {
			if flag, ok := model.Find(row, field.RequiredWhen); ok && flag.Flag() {
				rules = append([]validation.Rule{validation.Required()}, rules...)
			}
		}
		issues.Check(prefix+field.Name, pair.Text(), rules...)
	}
}
