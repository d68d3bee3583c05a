package form

import (
	"strconv"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
)

// Snapshot is an immutable view of every section of a session. Sessions
// replace it on each accepted section change.
type Snapshot struct {
	Personal   model.PersonalInfo
	Academic   model.Entries[model.AcademicEntry]
	Employment model.Entries[model.EmploymentEntry]
	Guardians  model.Entries[model.GuardianEntry]
	Siblings   model.Entries[model.SiblingEntry]
	Financial  model.FinancialSummary
	Essays     model.Essays
	// Revision counts the changes reduced into the snapshot.
	Revision int
}

// reduce returns a copy of s with the state of one section replaced.
func (s Snapshot) reduce(name section.Name, state model.State) Snapshot {
	switch value := state.(type) {
	case model.PersonalInfo:
		s.Personal = value
	case model.Entries[model.AcademicEntry]:
		s.Academic = value.Clone()
	case model.Entries[model.EmploymentEntry]:
		s.Employment = value.Clone()
	case model.Entries[model.GuardianEntry]:
		s.Guardians = value.Clone()
	case model.Entries[model.SiblingEntry]:
		s.Siblings = value.Clone()
	case model.FinancialSummary:
		s.Financial = value
	case model.Essays:
		s.Essays = value
	default:
		return s
	}
	s.Revision++
	return s
}

// Sections returns the section states keyed by name, as consumed by the
// aggregator.
func (s Snapshot) Sections() map[section.Name]model.State {
	return map[section.Name]model.State{
		section.Personal:   s.Personal,
		section.Academic:   s.Academic,
		section.Employment: s.Employment,
		section.Guardians:  s.Guardians,
		section.Siblings:   s.Siblings,
		section.Financial:  s.Financial,
		section.Essays:     s.Essays,
	}
}

// Values flattens the snapshot into dotted field paths such as
// "personal.email" and "academic.0.school".
func (s Snapshot) Values() map[string]any {
	values := make(map[string]any)
	for name, state := range s.Sections() {
		for index, row := range state.Rows() {
			prefix := string(name) + "."
			if state.Repeated() {
				prefix += strconv.Itoa(index) + "."
			}
			for _, pair := range row {
				values[prefix+pair.Key] = pair.Value
			}
		}
	}
	return values
}

// EntryCounts reports the number of entries of each list section.
func (s Snapshot) EntryCounts() map[string]int {
	return map[string]int{
		string(section.Academic):   len(s.Academic),
		string(section.Employment): len(s.Employment),
		string(section.Guardians):  len(s.Guardians),
		string(section.Siblings):   len(s.Siblings),
	}
}
