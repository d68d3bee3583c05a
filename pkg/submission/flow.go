package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

// Gate reports the issues that block a submit. An empty result lets the
// submit proceed.
type Gate func() validation.Issues

// Assembler produces the record sent by an accepted submit.
type Assembler func() model.SubmissionRecord

// Observer receives every finished attempt, including refused ones.
type Observer func(Outcome)

// Option customises a Flow.
type Option func(*Flow)

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithIDGenerator overrides the attempt id generator (UUIDv4 by default).
func WithIDGenerator(next func() string) Option {
	return func(f *Flow) {
		if next != nil {
			f.nextID = next
		}
	}
}

// WithTimeout bounds the gateway call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Flow) {
		f.timeout = timeout
	}
}

// WithObserver registers an observer notified after every attempt.
func WithObserver(observer Observer) Option {
	return func(f *Flow) {
		if observer != nil {
			f.observers = append(f.observers, observer)
		}
	}
}

// OnSuccess registers a hook run after the gateway accepted a submission and
// before the flow returns to Idle.
func OnSuccess(hook func()) Option {
	return func(f *Flow) {
		if hook != nil {
			f.onSuccess = append(f.onSuccess, hook)
		}
	}
}

// OnFailure registers a hook run after a gateway failure.
func OnFailure(hook func(Outcome)) Option {
	return func(f *Flow) {
		if hook != nil {
			f.onFailure = append(f.onFailure, hook)
		}
	}
}

// Flow is the submission state machine
// Idle -> Submitting -> {Succeeded, Failed} -> Idle.
// It is safe for concurrent use; at most one attempt is in flight.
type Flow struct {
	gateway   Gateway
	logger    *zap.Logger
	nextID    func() string
	timeout   time.Duration
	observers []Observer
	onSuccess []func()
	onFailure []func(Outcome)

	mu     sync.Mutex
	status Status
	last   Outcome
	wg     sync.WaitGroup
}

// NewFlow constructs a Flow delivering through gateway.
func NewFlow(gateway Gateway, options ...Option) *Flow {
	f := &Flow{
		gateway: gateway,
		logger:  zap.NewNop(),
		nextID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Status returns the current state.
func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Last returns the outcome of the most recent finished attempt.
func (f *Flow) Last() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Submit validates through gate and, when ready, sends the assembled record.
// Refusals return ErrInFlight or a *NotReadyError (matching ErrNotReady) and
// leave the flow Idle. Gateway failures are not returned as errors: they are
// reported through Outcome.Status, Outcome.Message and Outcome.Err.
//
// The gateway call ignores cancellation of ctx once started.
func (f *Flow) Submit(ctx context.Context, gate Gate, assemble Assembler) (Outcome, error) {
	attempt, err := f.begin(gate, assemble)
	if err != nil {
		return attempt, err
	}
	return f.finish(ctx, attempt), nil
}

// SubmitAsync is Submit with the gateway call running on its own goroutine.
// Refusals are returned immediately; otherwise the returned channel yields
// exactly one Outcome and is then closed.
func (f *Flow) SubmitAsync(ctx context.Context, gate Gate, assemble Assembler) (<-chan Outcome, error) {
	attempt, err := f.begin(gate, assemble)
	if err != nil {
		return nil, err
	}

	out := make(chan Outcome, 1)
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer close(out)
		out <- f.finish(ctx, attempt)
	}()
	return out, nil
}

// Wait blocks until every asynchronous attempt has finished.
func (f *Flow) Wait() {
	f.wg.Wait()
}

func (f *Flow) begin(gate Gate, assemble Assembler) (Outcome, error) {
	f.mu.Lock()
	if status := f.status; status != Idle {
		f.mu.Unlock()
		return Outcome{Status: status, Err: ErrInFlight}, ErrInFlight
	}
	if f.gateway == nil {
		f.mu.Unlock()
		return Outcome{Status: Idle, Err: ErrNoGateway}, ErrNoGateway
	}

	var issues validation.Issues
	if gate != nil {
		issues = gate()
	}
	if len(issues) > 0 {
		f.mu.Unlock()
		err := &NotReadyError{Issues: issues.Clone()}
		outcome := Outcome{Status: Idle, Err: err, Issues: issues.Clone()}
		f.logger.Debug("submission refused", zap.Strings("paths", issues.Paths()))
		f.notify(outcome)
		return outcome, err
	}

	f.status = Submitting
	f.mu.Unlock()

	attempt := Outcome{
		AttemptID: f.nextID(),
		Status:    Submitting,
	}
	if assemble != nil {
		attempt.Record = assemble()
	}
	return attempt, nil
}

func (f *Flow) finish(ctx context.Context, attempt Outcome) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	sendCtx := context.WithoutCancel(ctx)
	if f.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, f.timeout)
		defer cancel()
	}

	logger := f.logger.With(zap.String("attempt_id", attempt.AttemptID))
	logger.Info("submission started", zap.Int("fields", attempt.Record.Len()))

	started := time.Now()
	err := f.gateway.Send(sendCtx, attempt.Record)
	attempt.Duration = time.Since(started)

	if err != nil {
		attempt.Status = Failed
		attempt.Err = err
		attempt.Detail = detail(err)
		attempt.Message = FailureMessage(attempt.Detail)
		logger.Warn("submission failed", zap.Error(err), zap.Duration("duration", attempt.Duration))
	} else {
		attempt.Status = Succeeded
		attempt.Message = SuccessMessage
		logger.Info("submission succeeded", zap.Duration("duration", attempt.Duration))
	}

	f.mu.Lock()
	f.status = attempt.Status
	f.mu.Unlock()

	if attempt.Status == Succeeded {
		for _, hook := range f.onSuccess {
			hook()
		}
	} else {
		for _, hook := range f.onFailure {
			hook(attempt)
		}
	}

	f.mu.Lock()
	f.status = Idle
	f.last = attempt
	f.mu.Unlock()

	f.notify(attempt)
	return attempt
}

func (f *Flow) notify(outcome Outcome) {
	for _, observer := range f.observers {
		observer(outcome)
	}
}

// DetailError lets a gateway expose the raw failure text shown to the user
// separately from its wrapped error chain.
type DetailError interface {
	error
	Detail() string
}

func detail(err error) string {
	var detailed DetailError
	if errors.As(err, &detailed) {
		return detailed.Detail()
	}
	return err.Error()
}
