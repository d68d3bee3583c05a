package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderBuild(t *testing.T) {
	def := Definition{
		ID:       "trade",
		Endpoint: "/forms/trade",
		Sections: []SectionDefinition{
			{
				Name: "personal",
				Fields: []FieldDefinition{
					{Name: "email", Format: "email", Required: true},
				},
			},
			{
				Name:       "siblings",
				Repeated:   true,
				MinEntries: 0,
				Fields: []FieldDefinition{
					{Name: "inSchool", Type: FieldTypeBoolean},
					{Name: "schoolName", RequiredWhen: "inSchool"},
				},
			},
			{
				Name: "essays",
				Fields: []FieldDefinition{
					{Name: "employmentPlans", MaxWords: 150},
				},
			},
		},
	}

	form, err := New(Options{}).Build(def)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := FormModel{
		ID:       "trade",
		Title:    "Trade",
		Endpoint: "/forms/trade",
		Method:   "POST",
		Metadata: map[string]string{"sections": "3"},
		Sections: []Section{
			{
				Name:  "personal",
				Title: "Personal",
				Fields: []Field{{
					Name:     "email",
					Type:     FieldTypeString,
					Format:   FormatEmail,
					Required: true,
					Label:    "Email",
					Validations: []ValidationRule{
						{Kind: ValidationRuleRequired},
						{Kind: ValidationRuleEmail},
					},
					Metadata: map[string]string{"inputType": "email"},
				}},
			},
			{
				Name:     "siblings",
				Title:    "Siblings",
				Repeated: true,
				AddLabel: "Add Siblings",
				Fields: []Field{
					{
						Name:     "inSchool",
						Type:     FieldTypeBoolean,
						Label:    "In School",
						Metadata: map[string]string{"inputType": "checkbox"},
					},
					{
						Name:         "schoolName",
						Type:         FieldTypeString,
						RequiredWhen: "inSchool",
						Label:        "School Name",
						Validations: []ValidationRule{
							{Kind: ValidationRuleRequired, Params: map[string]string{"when": "inSchool"}},
						},
						Metadata: map[string]string{"inputType": "text"},
					},
				},
			},
			{
				Name:  "essays",
				Title: "Essays",
				Fields: []Field{{
					Name:     "employmentPlans",
					Type:     FieldTypeString,
					Format:   FormatTextArea,
					Label:    "Employment Plans",
					MaxWords: 150,
					Validations: []ValidationRule{
						{Kind: ValidationRuleMaxWords, Params: map[string]string{"value": "150"}},
					},
					Metadata: map[string]string{"inputType": "textarea"},
				}},
			},
		},
	}

	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderBuild_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want string
	}{
		{
			name: "missing id",
			def:  Definition{Endpoint: "/x", Sections: []SectionDefinition{{Name: "a", Fields: []FieldDefinition{{Name: "b"}}}}},
			want: "form id is required",
		},
		{
			name: "missing sections",
			def:  Definition{ID: "x", Endpoint: "/x"},
			want: "declares no sections",
		},
		{
			name: "duplicate field",
			def: Definition{ID: "x", Endpoint: "/x", Sections: []SectionDefinition{{
				Name:   "a",
				Fields: []FieldDefinition{{Name: "b"}, {Name: "b"}},
			}}},
			want: `duplicate field "b"`,
		},
		{
			name: "requiredWhen not boolean",
			def: Definition{ID: "x", Endpoint: "/x", Sections: []SectionDefinition{{
				Name:   "a",
				Fields: []FieldDefinition{{Name: "flag"}, {Name: "b", RequiredWhen: "flag"}},
			}}},
			want: "must be boolean",
		},
		{
			name: "minEntries on scalar section",
			def: Definition{ID: "x", Endpoint: "/x", Sections: []SectionDefinition{{
				Name:       "a",
				MinEntries: 1,
				Fields:     []FieldDefinition{{Name: "b"}},
			}}},
			want: "requires a repeated section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{}).Build(tt.def)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := New(Options{}).Build(Definition{Endpoint: "/x"})
	if !errors.Is(err, errDefinitionIDMissing) {
		t.Fatalf("expected errDefinitionIDMissing, got %v", err)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"firstName":      "First Name",
		"date_of_birth":  "Date Of Birth",
		"highSchoolGPA":  "High School GPA",
		"class-rank":     "Class Rank",
		"organizations":  "Organizations",
		"":               "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
