package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rule  validation.Rule
		want  validation.Result
	}{
		{"required empty", "", validation.Required(), validation.Result{Message: "Required"}},
		{"required blank", "   ", validation.Required(), validation.Result{Message: "Required"}},
		{"required ok", "Ada", validation.Required(), validation.Result{Valid: true}},
		{"email ok", "ada@example.com", validation.Email(), validation.Result{Valid: true}},
		{"email bad", "ada@", validation.Email(), validation.Result{Message: "Invalid email"}},
		{"email empty passes", "", validation.Email(), validation.Result{Valid: true}},
		{"phone ok", "5551234567", validation.Phone(), validation.Result{Valid: true}},
		{"phone leading zero", "0551234567", validation.Phone(), validation.Result{Message: "Invalid phone number"}},
		{"phone short", "555123", validation.Phone(), validation.Result{Message: "Invalid phone number"}},
		{"date today", "2024-03-10", validation.DateNotFuture(fixedClock), validation.Result{Valid: true}},
		{"date past", "2001-07-04", validation.DateNotFuture(fixedClock), validation.Result{Valid: true}},
		{"date future", "2024-03-11", validation.DateNotFuture(fixedClock), validation.Result{Message: "Date cannot be in the future"}},
		{"date invalid", "03/10/2024", validation.DateNotFuture(fixedClock), validation.Result{Message: "Invalid date"}},
		{"words within", "one two  three", validation.MaxWords(3), validation.Result{Valid: true}},
		{"words over", "one two three four", validation.MaxWords(3), validation.Result{Message: "Cannot exceed 3 words"}},
		{"words empty", "", validation.MaxWords(0), validation.Result{Valid: true}},
		{"pattern ok", "A1", validation.Pattern(`^[A-Z][0-9]$`, "Bad code"), validation.Result{Valid: true}},
		{"pattern bad", "11", validation.Pattern(`^[A-Z][0-9]$`, "Bad code"), validation.Result{Message: "Bad code"}},
		{"pattern invalid expr", "x", validation.Pattern(`(`, ""), validation.Result{Message: "Invalid value"}},
		{"nil rule", "anything", nil, validation.Result{Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.Validate(tt.value, tt.rule)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":                       0,
		"   ":                    0,
		"one":                    1,
		"  one\ttwo\nthree  ":    3,
		strings.Repeat("w ", 150): 150,
	}
	for text, want := range cases {
		if got := validation.WordCount(text); got != want {
			t.Errorf("WordCount(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestWithinWordLimit(t *testing.T) {
	if !validation.WithinWordLimit("", 0) {
		t.Fatalf("expected empty string to always be accepted")
	}
	if validation.WithinWordLimit("   ", -1) {
		t.Fatalf("expected whitespace to be treated as content for negative limits")
	}
	if validation.WithinWordLimit(strings.Repeat("word ", 151), 150) {
		t.Fatalf("expected 151 words to exceed limit")
	}
}

func TestRulesReturnsFirstFailure(t *testing.T) {
	got := validation.Rules("", validation.Required(), validation.Email())
	if got.Message != "Required" {
		t.Fatalf("expected Required failure first, got %q", got.Message)
	}
}

func TestIssues(t *testing.T) {
	issues := validation.Issues{}
	issues.Check("personal.email", "nope", validation.Required(), validation.Email())
	issues.Check("personal.firstName", "Ada", validation.Required())
	issues.Add("academic", "Add at least one school")

	want := validation.Issues{
		"personal.email": {"Invalid email"},
		"academic":       {"Add at least one school"},
	}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"academic", "personal.email"}, issues.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	clone := issues.Clone()
	clone.Add("academic", "again")
	if len(issues["academic"]) != 1 {
		t.Fatalf("expected clone to be independent")
	}
}

func TestFromModel(t *testing.T) {
	field := model.Field{
		Name: "email",
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired},
			{Kind: model.ValidationRuleEmail},
			{Kind: model.ValidationRuleRequired, Params: map[string]string{"when": "inSchool"}},
			{Kind: "unknown"},
		},
	}
	rules := validation.FromModel(field, fixedClock)
	if len(rules) != 2 {
		t.Fatalf("expected two rules, got %d", len(rules))
	}
	if got := validation.Rules("", rules...); got.Message != "Required" {
		t.Fatalf("expected Required, got %q", got.Message)
	}

	essay := model.Field{Validations: []model.ValidationRule{
		{Kind: model.ValidationRuleMaxWords, Params: map[string]string{"value": "2"}},
	}}
	if got := validation.Rules("a b c", validation.FromModel(essay, fixedClock)...); got.Valid {
		t.Fatalf("expected word limit failure")
	}
}
