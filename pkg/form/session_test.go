package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-scholarform/pkg/aggregate"
	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/testsupport"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

func newSession(t *testing.T, kind form.Kind, options ...form.Option) *form.Session {
	t.Helper()
	session, err := form.NewSession(kind, append([]form.Option{form.WithClock(testsupport.FixedClock)}, options...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestNewSessionUnknownKind(t *testing.T) {
	if _, err := form.NewSession("culinary"); !errors.Is(err, form.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSessionEssaysPerKind(t *testing.T) {
	tests := []struct {
		kind form.Kind
		want map[string]int
	}{
		{form.Trade, map[string]int{"employmentPlans": 150, "honorsAndAwards": 150, "organizationsAndLeadership": 150}},
		{form.University, map[string]int{"message": 250, "careerGoals": 500}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			session := newSession(t, tt.kind)
			if diff := cmp.Diff(tt.want, session.Snapshot().Essays.Limits()); diff != "" {
				t.Fatalf("essay limits mismatch (-want +got):\n%s", diff)
			}
			essays, ok := session.Model().Section("essays")
			if !ok || len(essays.Fields) != len(tt.want) {
				t.Fatalf("expected essay fields in the form model, got %+v", essays)
			}
		})
	}
}

func TestSnapshotFollowsControllers(t *testing.T) {
	session := newSession(t, form.Trade)

	if err := session.Update(section.Personal, section.Set{Field: "firstName", Value: "Ada"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := session.Update(section.Academic, section.Add{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.Update(section.Academic, section.SetEntry{Index: 0, Field: "school", Value: "Lee High"}); err != nil {
		t.Fatalf("set entry: %v", err)
	}

	snapshot := session.Snapshot()
	if snapshot.Personal.FirstName != "Ada" {
		t.Fatalf("expected snapshot to carry first name, got %+v", snapshot.Personal)
	}
	want := model.Entries[model.AcademicEntry]{{School: "Lee High"}}
	if diff := cmp.Diff(want, snapshot.Academic); diff != "" {
		t.Fatalf("academic mismatch (-want +got):\n%s", diff)
	}
	if snapshot.Revision != 3 {
		t.Fatalf("expected three reduced changes, got %d", snapshot.Revision)
	}

	values := snapshot.Values()
	if values["academic.0.school"] != "Lee High" || values["personal.firstName"] != "Ada" {
		t.Fatalf("unexpected dotted values %#v", values)
	}
	if got := snapshot.EntryCounts()["academic"]; got != 1 {
		t.Fatalf("expected one academic entry, got %d", got)
	}

	if err := session.Update("hobbies", section.Add{}); !errors.Is(err, section.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	session := newSession(t, form.Trade)
	if err := session.Update(section.Siblings, section.Add{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := session.Snapshot()
	if err := session.Update(section.Siblings, section.SetEntry{Index: 0, Field: "name", Value: "Ben"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if before.Siblings[0].Name != "" {
		t.Fatalf("earlier snapshot observed a later change")
	}
}

func TestValidateEmptyForm(t *testing.T) {
	session := newSession(t, form.University)
	issues := session.Validate()

	for _, path := range []string{
		"personal.firstName",
		"personal.email",
		"academic",
		"essays.message",
		"essays.careerGoals",
	} {
		if len(issues[path]) == 0 {
			t.Errorf("expected issue for %s, got %v", path, issues)
		}
	}
	if got := issues.First("academic"); got != "Add at least one entry" {
		t.Fatalf("unexpected academic message %q", got)
	}
}

func TestValidateFieldRules(t *testing.T) {
	session := testsupport.FilledSession(t, form.Trade)
	if issues := session.Validate(); len(issues) > 0 {
		t.Fatalf("expected filled session to be valid, got %v", issues)
	}

	patches := []struct {
		name  section.Name
		patch section.Patch
	}{
		{section.Personal, section.Set{Field: "email", Value: "ada@"}},
		{section.Personal, section.Set{Field: "phone", Value: "0123"}},
		{section.Personal, section.Set{Field: "dateOfBirth", Value: "2030-01-01"}},
		{section.Siblings, section.SetEntry{Index: 0, Field: "schoolName", Value: ""}},
		{section.Financial, section.Set{Field: "highSchoolGPA", Value: "A+"}},
	}
	for _, p := range patches {
		if err := session.Update(p.name, p.patch); err != nil {
			t.Fatalf("update %s: %v", p.name, err)
		}
	}

	want := validation.Issues{
		"personal.email":          {"Invalid email"},
		"personal.phone":          {"Invalid phone number"},
		"personal.dateOfBirth":    {"Date cannot be in the future"},
		"siblings.0.schoolName":   {"Required"},
		"financial.highSchoolGPA": {"Invalid GPA"},
	}
	if diff := cmp.Diff(want, session.Validate()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyLoadsPostedValues(t *testing.T) {
	session := newSession(t, form.Trade)
	issues := session.Apply(map[string][]string{
		"personal.firstName":  {"Ada"},
		"academic.4.school":   {"FGCU"},
		"academic.1.school":   {"Lee High"},
		"siblings.0.name":     {"Ben"},
		"siblings.0.inSchool": {"off", "on"},
		"_csrf":               {"token"},
		"_action":             {"submit"},
	})
	if len(issues) > 0 {
		t.Fatalf("unexpected issues %v", issues)
	}

	snapshot := session.Snapshot()
	wantAcademic := model.Entries[model.AcademicEntry]{{School: "Lee High"}, {School: "FGCU"}}
	if diff := cmp.Diff(wantAcademic, snapshot.Academic); diff != "" {
		t.Fatalf("academic mismatch (-want +got):\n%s", diff)
	}
	if !snapshot.Siblings[0].InSchool {
		t.Fatalf("expected checkbox to be parsed as true")
	}

	session.Apply(map[string][]string{"personal.lastName": {"Lovelace"}})
	snapshot = session.Snapshot()
	if snapshot.Personal.FirstName != "" || len(snapshot.Academic) != 0 {
		t.Fatalf("expected apply to replace previous state, got %+v", snapshot)
	}
}

func TestApplyUncheckedFlagClearsDependentField(t *testing.T) {
	session := newSession(t, form.Trade)
	issues := session.Apply(map[string][]string{
		"siblings.0.name":       {"Ben"},
		"siblings.0.schoolName": {"Lincoln High"},
		"siblings.1.name":       {"Cleo"},
		"siblings.1.inSchool":   {"on"},
		"siblings.1.schoolName": {"Lincoln High"},
	})
	if len(issues) > 0 {
		t.Fatalf("unexpected issues %v", issues)
	}

	want := model.Entries[model.SiblingEntry]{
		{Name: "Ben"},
		{Name: "Cleo", InSchool: true, SchoolName: "Lincoln High"},
	}
	if diff := cmp.Diff(want, session.Snapshot().Siblings); diff != "" {
		t.Fatalf("siblings mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyRejectsOverLimitEssay(t *testing.T) {
	session := newSession(t, form.Trade)
	issues := session.Apply(map[string][]string{
		"essays.employmentPlans": {testsupport.Words(151)},
		"essays.honorsAndAwards": {testsupport.Words(150)},
	})

	want := validation.Issues{"essays.employmentPlans": {"Cannot exceed 150 words"}}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	essays := session.Snapshot().Essays
	if field, _ := essays.Field("employmentPlans"); field.Text != "" {
		t.Fatalf("expected rejected essay to stay empty")
	}
	if field, _ := essays.Field("honorsAndAwards"); field.Text != testsupport.Words(150) {
		t.Fatalf("expected 150 words to be accepted")
	}
}

func TestWordLimitEditRetainsPreviousText(t *testing.T) {
	session := newSession(t, form.Trade)
	text := testsupport.Words(150)
	if err := session.Update(section.Essays, section.Set{Field: "employmentPlans", Value: text}); err != nil {
		t.Fatalf("update: %v", err)
	}
	err := session.Update(section.Essays, section.Set{Field: "employmentPlans", Value: text + " more"})
	if !errors.Is(err, section.ErrWordLimitExceeded) {
		t.Fatalf("expected ErrWordLimitExceeded, got %v", err)
	}
	if field, _ := session.Snapshot().Essays.Field("employmentPlans"); field.Text != text {
		t.Fatalf("expected the 150-word text to be retained")
	}
}

func TestSubmitSuccessResetsSections(t *testing.T) {
	gateway := &testsupport.Gateway{}
	session := testsupport.FilledSession(t, form.Trade, form.WithGateway(gateway))

	outcome, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != submission.Succeeded {
		t.Fatalf("expected success, got %+v", outcome)
	}

	records := gateway.Records()
	if len(records) != 1 {
		t.Fatalf("expected one delivered record, got %d", len(records))
	}
	if got := records[0].String(aggregate.SchoolDetailsKey); got != "School: Lee High, Dates: 2019-2023" {
		t.Fatalf("unexpected school details %q", got)
	}
	if got := records[0].String("formKind"); got != "trade" {
		t.Fatalf("expected form kind extra, got %q", got)
	}

	snapshot := session.Snapshot()
	empty := form.Snapshot{Essays: form.InitialEssays(form.Trade)}
	if diff := cmp.Diff(empty.Sections(), snapshot.Sections(), cmpopts.EquateEmpty(), cmp.AllowUnexported(model.Essays{})); diff != "" {
		t.Fatalf("expected sections reset (-want +got):\n%s", diff)
	}
	if session.Status() != submission.Idle {
		t.Fatalf("expected idle, got %s", session.Status())
	}
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	gateway := &testsupport.Gateway{Err: errors.New("network timeout")}
	session := testsupport.FilledSession(t, form.University, form.WithGateway(gateway))
	before := session.Snapshot().Values()

	outcome, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != submission.Failed || outcome.Detail != "network timeout" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if diff := cmp.Diff(before, session.Snapshot().Values()); diff != "" {
		t.Fatalf("values changed after failure (-want +got):\n%s", diff)
	}
	if session.Status() != submission.Idle {
		t.Fatalf("expected retry to be possible")
	}
}

func TestSubmitNotReadyStaysIdle(t *testing.T) {
	gateway := &testsupport.Gateway{}
	session := newSession(t, form.Trade, form.WithGateway(gateway))

	_, err := session.Submit(context.Background())
	if !errors.Is(err, submission.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if session.Status() != submission.Idle || len(gateway.Records()) != 0 {
		t.Fatalf("expected idle with no gateway call")
	}
}

func TestParseKind(t *testing.T) {
	kind, err := form.ParseKind("University")
	if err != nil || kind != form.University {
		t.Fatalf("expected university, got %q (%v)", kind, err)
	}
}
