package aggregate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scholarform/pkg/aggregate"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
)

func sampleSections() map[section.Name]model.State {
	return map[section.Name]model.State{
		section.Personal: model.PersonalInfo{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			DateOfBirth: "2005-12-10",
			Email:       "ada@example.com",
		},
		section.Academic: model.Entries[model.AcademicEntry]{
			{School: "Lee High", Dates: "2019-2023", ClassSize: "320"},
			{School: "FGCU", Dates: "2023-"},
		},
		section.Siblings: model.Entries[model.SiblingEntry]{
			{Name: "Ben", InSchool: true, SchoolName: "Lincoln High"},
			{Name: "Cara", Age: "24"},
		},
		section.Employment: model.Entries[model.EmploymentEntry]{},
		section.Financial:  model.FinancialSummary{AcceptedTo: true, ProgramCost: "12000"},
		section.Essays: model.NewEssays(
			model.EssayField{Name: "employmentPlans", Label: "Employment Plans", MaxWords: 150, Text: "Weld"},
		),
	}
}

func TestAssemble(t *testing.T) {
	record := aggregate.Assemble(sampleSections())

	want := map[string]any{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"dateOfBirth":    "2005-12-10",
		"mailingAddress": "",
		"phone":          "",
		"email":          "ada@example.com",
		aggregate.SchoolDetailsKey: "School: Lee High, Dates: 2019-2023, Class Size: 320\n" +
			"School: FGCU, Dates: 2023-",
		aggregate.EmploymentDetailsKey: "",
		aggregate.SiblingDetailsKey: "Name: Ben, In School: Yes, School Name: Lincoln High\n" +
			"Name: Cara, Age: 24, In School: No",
		"appliedTo":       "",
		"acceptedTo":      true,
		"programCost":     "12000",
		"highSchoolGPA":   "",
		"employmentPlans": "Weld",
	}
	if diff := cmp.Diff(want, record.Values()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	sections := sampleSections()
	first := aggregate.Assemble(sections)
	second := aggregate.Assemble(sections)
	if !first.Equal(second) {
		t.Fatalf("expected equal records, diff:\n%s", cmp.Diff(first.Values(), second.Values()))
	}
}

func TestAssembleAfterRemovingFirstEntry(t *testing.T) {
	ctrl := section.NewList[model.AcademicEntry](section.Academic, nil, nil, nil)
	patches := []section.Patch{
		section.Add{},
		section.SetEntry{Index: 0, Field: "school", Value: "Lee High"},
		section.SetEntry{Index: 0, Field: "dates", Value: "2019-2023"},
		section.Add{},
		section.SetEntry{Index: 1, Field: "school", Value: "FGCU"},
		section.SetEntry{Index: 1, Field: "dates", Value: "2023-"},
		section.Remove{Index: 0},
	}
	for _, patch := range patches {
		if err := ctrl.Apply(patch); err != nil {
			t.Fatalf("apply %#v: %v", patch, err)
		}
	}

	record := aggregate.Assemble(map[section.Name]model.State{section.Academic: ctrl.State()})
	if got := record.String(aggregate.SchoolDetailsKey); got != "School: FGCU, Dates: 2023-" {
		t.Fatalf("unexpected school details %q", got)
	}
}

func TestAssembleWithSanitizerAndExtra(t *testing.T) {
	sections := map[section.Name]model.State{
		section.Personal: model.PersonalInfo{FirstName: "<b>Ada</b> & co"},
		section.Guardians: model.Entries[model.GuardianEntry]{
			{Name: "<script>alert(1)</script>Grace", Relationship: "Mother"},
		},
	}
	record := aggregate.New(
		aggregate.WithSanitizer(nil),
		aggregate.WithExtra("formKind", "trade"),
	).Assemble(sections)

	if got := record.String("firstName"); got != "Ada & co" {
		t.Fatalf("expected sanitized first name, got %q", got)
	}
	if got := record.String(aggregate.GuardianDetailsKey); got != "Name: Grace, Relationship: Mother" {
		t.Fatalf("expected sanitized guardian details, got %q", got)
	}
	if got := record.String("formKind"); got != "trade" {
		t.Fatalf("expected extra value, got %q", got)
	}
}

func TestDetailKey(t *testing.T) {
	if got := aggregate.DetailKey(section.Academic); got != aggregate.SchoolDetailsKey {
		t.Fatalf("unexpected key %q", got)
	}
	if got := aggregate.DetailKey("volunteering"); got != "volunteeringDetailsString" {
		t.Fatalf("unexpected fallback key %q", got)
	}
}
