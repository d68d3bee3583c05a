package testsupport

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
)

// Today is the pinned date used by FixedClock.
var Today = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

// FixedClock returns Today.
func FixedClock() time.Time { return Today }

// Words returns n space separated words.
func Words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// FilledValues returns posted form values that pass validation for kind.
func FilledValues(kind form.Kind) map[string][]string {
	values := map[string][]string{
		"personal.firstName":       {"Ada"},
		"personal.lastName":        {"Lovelace"},
		"personal.dateOfBirth":     {"2005-12-10"},
		"personal.mailingAddress":  {"12 St James's Square, London"},
		"personal.phone":           {"5551234567"},
		"personal.email":           {"ada@example.com"},
		"academic.0.school":        {"Lee High"},
		"academic.0.dates":         {"2019-2023"},
		"guardians.0.name":         {"Anne Byron"},
		"guardians.0.relationship": {"Mother"},
		"siblings.0.name":          {"Ben"},
		"siblings.0.inSchool":      {"on"},
		"siblings.0.schoolName":    {"Lincoln High"},
		"financial.appliedTo":      {"Southwest Tech"},
		"financial.acceptedTo":     {"on"},
		"financial.programCost":    {"12000"},
		"financial.highSchoolGPA":  {"3.8"},
	}
	for _, essay := range form.InitialEssays(kind).Fields() {
		values["essays."+essay.Name] = []string{"I want to " + essay.Label}
	}
	return values
}

// FilledSession returns a session for kind loaded with FilledValues.
func FilledSession(t *testing.T, kind form.Kind, options ...form.Option) *form.Session {
	t.Helper()

	session, err := form.NewSession(kind, append([]form.Option{form.WithClock(FixedClock)}, options...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if issues := session.Apply(FilledValues(kind)); len(issues) > 0 {
		t.Fatalf("apply fixture values: %v", issues)
	}
	return session
}

// Gateway records every record it receives and fails with Err when set.
type Gateway struct {
	mu      sync.Mutex
	Err     error
	records []model.SubmissionRecord
}

// Send implements submission.Gateway.
func (g *Gateway) Send(_ context.Context, record model.SubmissionRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = append(g.records, record)
	return g.Err
}

// Records returns the received records.
func (g *Gateway) Records() []model.SubmissionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.SubmissionRecord(nil), g.records...)
}

// Fail makes subsequent sends return err.
func (g *Gateway) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = err
}
