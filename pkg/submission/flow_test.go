package submission_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingGateway struct {
	mu      sync.Mutex
	calls   []model.SubmissionRecord
	err     error
	release chan struct{}
	started chan struct{}
	ctxErr  error
}

func (g *recordingGateway) Send(ctx context.Context, record model.SubmissionRecord) error {
	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, record)
	g.ctxErr = ctx.Err()
	return g.err
}

func (g *recordingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func ready() validation.Issues { return nil }

func sampleRecord() model.SubmissionRecord {
	return model.NewRecordBuilder().String("firstName", "Ada").Build()
}

func TestSubmitSuccess(t *testing.T) {
	gateway := &recordingGateway{}
	resets := 0
	var observed []submission.Outcome
	flow := submission.NewFlow(gateway,
		submission.WithIDGenerator(func() string { return "attempt-1" }),
		submission.OnSuccess(func() { resets++ }),
		submission.WithObserver(func(o submission.Outcome) { observed = append(observed, o) }),
	)

	outcome, err := flow.Submit(context.Background(), ready, sampleRecord)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != submission.Succeeded || outcome.Message != submission.SuccessMessage {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.AttemptID != "attempt-1" {
		t.Fatalf("unexpected attempt id %q", outcome.AttemptID)
	}
	if resets != 1 {
		t.Fatalf("expected reset hook once, got %d", resets)
	}
	if gateway.count() != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gateway.count())
	}
	if flow.Status() != submission.Idle {
		t.Fatalf("expected flow to return to idle, got %s", flow.Status())
	}
	if len(observed) != 1 || !observed[0].OK() {
		t.Fatalf("expected one successful observation, got %+v", observed)
	}
	if _, ok := outcome.Record.Get("attemptId"); ok {
		t.Fatalf("attempt id must not leak into the record")
	}
}

func TestSubmitFailureKeepsData(t *testing.T) {
	gateway := &recordingGateway{err: errors.New("network timeout")}
	resets := 0
	var failures []submission.Outcome
	flow := submission.NewFlow(gateway,
		submission.OnSuccess(func() { resets++ }),
		submission.OnFailure(func(o submission.Outcome) { failures = append(failures, o) }),
	)

	outcome, err := flow.Submit(context.Background(), ready, sampleRecord)
	if err != nil {
		t.Fatalf("gateway failures are reported in the outcome, got %v", err)
	}
	if outcome.Status != submission.Failed {
		t.Fatalf("expected failed status, got %s", outcome.Status)
	}
	if outcome.Message != "Failed to send the application: network timeout" {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	if outcome.Detail != "network timeout" {
		t.Fatalf("unexpected detail %q", outcome.Detail)
	}
	if resets != 0 || len(failures) != 1 {
		t.Fatalf("expected failure hook only, resets=%d failures=%d", resets, len(failures))
	}
	if flow.Status() != submission.Idle {
		t.Fatalf("expected retry to be possible, status %s", flow.Status())
	}
	if diff := cmp.Diff(outcome.Status, flow.Last().Status); diff != "" {
		t.Fatalf("last outcome mismatch (-want +got):\n%s", diff)
	}

	gateway.err = nil
	retry, err := flow.Submit(context.Background(), ready, sampleRecord)
	if err != nil || !retry.OK() {
		t.Fatalf("expected retry to succeed, got %+v (%v)", retry, err)
	}
	if gateway.count() != 2 {
		t.Fatalf("expected one call per attempt, got %d", gateway.count())
	}
}

func TestSubmitNotReady(t *testing.T) {
	gateway := &recordingGateway{}
	flow := submission.NewFlow(gateway)
	assembled := false

	gate := func() validation.Issues {
		return validation.Issues{"personal.email": {"Required"}}
	}
	outcome, err := flow.Submit(context.Background(), gate, func() model.SubmissionRecord {
		assembled = true
		return sampleRecord()
	})
	if !errors.Is(err, submission.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	var notReady *submission.NotReadyError
	if !errors.As(err, &notReady) || notReady.Issues.First("personal.email") != "Required" {
		t.Fatalf("expected issues on error, got %v", err)
	}
	if !strings.Contains(err.Error(), "personal.email") {
		t.Fatalf("expected path in error text, got %q", err.Error())
	}
	if outcome.Status != submission.Idle || flow.Status() != submission.Idle {
		t.Fatalf("expected idle, got %s / %s", outcome.Status, flow.Status())
	}
	if assembled || gateway.count() != 0 {
		t.Fatalf("expected no assemble and no gateway call")
	}
}

func TestSubmitAsyncRejectsConcurrentSubmit(t *testing.T) {
	gateway := &recordingGateway{release: make(chan struct{}), started: make(chan struct{})}
	flow := submission.NewFlow(gateway)

	results, err := flow.SubmitAsync(context.Background(), ready, sampleRecord)
	if err != nil {
		t.Fatalf("submit async: %v", err)
	}
	<-gateway.started

	if flow.Status() != submission.Submitting {
		t.Fatalf("expected submitting, got %s", flow.Status())
	}
	if _, err := flow.Submit(context.Background(), ready, sampleRecord); !errors.Is(err, submission.ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	close(gateway.release)
	outcome, ok := <-results
	if !ok || !outcome.OK() {
		t.Fatalf("expected successful outcome, got %+v", outcome)
	}
	if _, open := <-results; open {
		t.Fatalf("expected results channel to be closed")
	}
	flow.Wait()
	if gateway.count() != 1 {
		t.Fatalf("expected one gateway call, got %d", gateway.count())
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	gateway := &recordingGateway{release: make(chan struct{}), started: make(chan struct{})}
	flow := submission.NewFlow(gateway)

	ctx, cancel := context.WithCancel(context.Background())
	results, err := flow.SubmitAsync(ctx, ready, sampleRecord)
	if err != nil {
		t.Fatalf("submit async: %v", err)
	}
	<-gateway.started
	cancel()
	close(gateway.release)

	outcome := <-results
	flow.Wait()
	if !outcome.OK() {
		t.Fatalf("expected success despite cancellation, got %+v", outcome)
	}
	if gateway.ctxErr != nil {
		t.Fatalf("gateway context should not observe caller cancellation, got %v", gateway.ctxErr)
	}
}

func TestSubmitTimeout(t *testing.T) {
	gateway := submission.GatewayFunc(func(ctx context.Context, _ model.SubmissionRecord) error {
		<-ctx.Done()
		return ctx.Err()
	})
	flow := submission.NewFlow(gateway, submission.WithTimeout(10*time.Millisecond))

	outcome, err := flow.Submit(context.Background(), ready, sampleRecord)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !errors.Is(outcome.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", outcome.Err)
	}
}

type detailedErr struct{ body string }

func (e detailedErr) Error() string  { return "relay: status 400: " + e.body }
func (e detailedErr) Detail() string { return e.body }

func TestSubmitUsesGatewayDetail(t *testing.T) {
	gateway := &recordingGateway{err: detailedErr{body: "The user ID is invalid"}}
	outcome, _ := submission.NewFlow(gateway).Submit(context.Background(), ready, sampleRecord)
	if outcome.Message != "Failed to send the application: The user ID is invalid" {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
}

func TestSubmitWithoutGateway(t *testing.T) {
	_, err := submission.NewFlow(nil).Submit(context.Background(), ready, sampleRecord)
	if !errors.Is(err, submission.ErrNoGateway) {
		t.Fatalf("expected ErrNoGateway, got %v", err)
	}
}
