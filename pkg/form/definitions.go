package form

import (
	"fmt"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
)

var personalFields = []model.FieldDefinition{
	{Name: "firstName", Label: "First Name", Required: true},
	{Name: "lastName", Label: "Last Name", Required: true},
	{Name: "dateOfBirth", Label: "Date of Birth", Format: model.FormatDate, Required: true},
	{Name: "mailingAddress", Label: "Mailing Address", Required: true},
	{Name: "phone", Label: "Phone", Format: model.FormatPhone, Required: true, Placeholder: "5551234567"},
	{Name: "email", Label: "Email", Format: model.FormatEmail, Required: true},
}

var academicFields = []model.FieldDefinition{
	{Name: "school", Label: "School", Required: true},
	{Name: "dates", Label: "Dates", Required: true, Placeholder: "2019-2023"},
	{Name: "classSize", Label: "Class Size"},
	{Name: "classRank", Label: "Class Rank"},
}

var employmentFields = []model.FieldDefinition{
	{Name: "employer", Label: "Employer", Required: true},
	{Name: "address", Label: "Address"},
	{Name: "title", Label: "Title", Required: true},
	{Name: "supervisor", Label: "Supervisor"},
	{Name: "startDate", Label: "Start Date", Required: true},
	{Name: "endDate", Label: "End Date"},
	{Name: "averageHours", Label: "Average Hours"},
}

var guardianFields = []model.FieldDefinition{
	{Name: "name", Label: "Name", Required: true},
	{Name: "relationship", Label: "Relationship", Required: true},
	{Name: "address", Label: "Address"},
	{Name: "mobile", Label: "Mobile", Format: model.FormatPhone},
	{Name: "email", Label: "Email", Format: model.FormatEmail},
	{Name: "occupation", Label: "Occupation"},
	{Name: "employer", Label: "Employer"},
}

var siblingFields = []model.FieldDefinition{
	{Name: "name", Label: "Name", Required: true},
	{Name: "age", Label: "Age"},
	{Name: "inSchool", Label: "In School", Type: model.FieldTypeBoolean},
	{Name: "schoolName", Label: "School Name", RequiredWhen: "inSchool"},
}

var financialFields = []model.FieldDefinition{
	{Name: "appliedTo", Label: "Applied To"},
	{Name: "acceptedTo", Label: "Accepted", Type: model.FieldTypeBoolean},
	{Name: "programCost", Label: "Program Cost"},
	{
		Name:  "highSchoolGPA",
		Label: "High School GPA",
		Validations: []model.ValidationRule{{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": `^[0-9](\.[0-9]{1,2})?$`, "message": "Invalid GPA"},
		}},
	},
}

var essayFields = map[Kind][]model.EssayField{
	Trade: {
		{Name: "employmentPlans", Label: "Employment Plans", MaxWords: 150},
		{Name: "honorsAndAwards", Label: "Honors and Awards", MaxWords: 150},
		{Name: "organizationsAndLeadership", Label: "Organizations and Leadership", MaxWords: 150},
	},
	University: {
		{Name: "message", Label: "Message", MaxWords: 250},
		{Name: "careerGoals", Label: "Career Goals", MaxWords: 500},
	},
}

var titles = map[Kind]string{
	Trade:      "Trade School Scholarship Application",
	University: "University Scholarship Application",
}

// Definition returns the field catalogue of a form variant.
func Definition(kind Kind) (model.Definition, error) {
	essays, ok := essayFields[kind]
	if !ok {
		return model.Definition{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	essayDefs := make([]model.FieldDefinition, 0, len(essays))
	for _, essay := range essays {
		essayDefs = append(essayDefs, model.FieldDefinition{
			Name:     essay.Name,
			Label:    fmt.Sprintf("%s (limit %d words)", essay.Label, essay.MaxWords),
			Required: true,
			MaxWords: essay.MaxWords,
		})
	}

	return model.Definition{
		ID:       string(kind),
		Title:    titles[kind],
		Endpoint: "/forms/" + string(kind),
		Sections: []model.SectionDefinition{
			{Name: string(section.Personal), Title: "Personal Information", Fields: personalFields},
			{Name: string(section.Academic), Title: "Academic History", Repeated: true, MinEntries: 1, AddLabel: "Add School", Fields: academicFields},
			{Name: string(section.Employment), Title: "Employment History", Repeated: true, AddLabel: "Add Job", Fields: employmentFields},
			{Name: string(section.Guardians), Title: "Parents or Guardians", Repeated: true, AddLabel: "Add Guardian", Fields: guardianFields},
			{Name: string(section.Siblings), Title: "Siblings", Repeated: true, AddLabel: "Add Sibling", Fields: siblingFields},
			{Name: string(section.Financial), Title: "Financial Information", Fields: financialFields},
			{Name: string(section.Essays), Title: "Essays", Fields: essayDefs},
		},
	}, nil
}

// InitialEssays returns the empty essay set of a variant.
func InitialEssays(kind Kind) model.Essays {
	return model.NewEssays(essayFields[kind]...)
}
