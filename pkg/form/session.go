package form

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/aggregate"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

// Option customises a Session.
type Option func(*Session)

// WithClock pins "today" for date validation.
func WithClock(clock validation.Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGateway sets the gateway used by Submit.
func WithGateway(gateway submission.Gateway) Option {
	return func(s *Session) {
		s.gateway = gateway
	}
}

// WithAssembler replaces the default aggregator.
func WithAssembler(assembler *aggregate.Assembler) Option {
	return func(s *Session) {
		if assembler != nil {
			s.assembler = assembler
		}
	}
}

// WithFlowOptions forwards options to the submission flow, e.g. observers
// or a gateway timeout.
func WithFlowOptions(options ...submission.Option) Option {
	return func(s *Session) {
		s.flowOptions = append(s.flowOptions, options...)
	}
}

// WithModelBuilder overrides the builder used to produce the form model.
func WithModelBuilder(builder model.Builder) Option {
	return func(s *Session) {
		if builder != nil {
			s.builder = builder
		}
	}
}

// Session is one applicant's in-memory form. It owns a controller per
// section, keeps an immutable Snapshot reduced from their change
// notifications and drives the submission flow.
type Session struct {
	kind        Kind
	form        model.FormModel
	clock       validation.Clock
	logger      *zap.Logger
	gateway     submission.Gateway
	assembler   *aggregate.Assembler
	builder     model.Builder
	flowOptions []submission.Option
	flow        *submission.Flow

	personal   *section.Record[model.PersonalInfo]
	academic   *section.List[model.AcademicEntry]
	employment *section.List[model.EmploymentEntry]
	guardians  *section.List[model.GuardianEntry]
	siblings   *section.List[model.SiblingEntry]
	financial  *section.Record[model.FinancialSummary]
	essays     *section.Record[model.Essays]

	controllers map[section.Name]section.Controller

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewSession builds an empty session for kind.
func NewSession(kind Kind, options ...Option) (*Session, error) {
	def, err := Definition(kind)
	if err != nil {
		return nil, err
	}

	s := &Session{
		kind:    kind,
		logger:  zap.NewNop(),
		builder: model.NewBuilder(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.assembler == nil {
		s.assembler = aggregate.New(aggregate.WithExtra("formKind", string(kind)))
	}

	form, err := s.builder.Build(def)
	if err != nil {
		return nil, fmt.Errorf("form: build %s model: %w", kind, err)
	}
	s.form = form

	essays := InitialEssays(kind)
	s.personal = section.NewRecord(section.Personal, model.PersonalInfo{}, nil)
	s.academic = section.NewList[model.AcademicEntry](section.Academic, nil, nil, nil)
	s.employment = section.NewList[model.EmploymentEntry](section.Employment, nil, nil, nil)
	s.guardians = section.NewList[model.GuardianEntry](section.Guardians, nil, nil, nil)
	s.siblings = section.NewList[model.SiblingEntry](section.Siblings, nil, nil, nil)
	s.financial = section.NewRecord(section.Financial, model.FinancialSummary{}, nil)
	s.essays = section.NewRecord(section.Essays, essays, section.Limits(essays.Limits()))

	s.controllers = map[section.Name]section.Controller{
		section.Personal:   s.personal,
		section.Academic:   s.academic,
		section.Employment: s.employment,
		section.Guardians:  s.guardians,
		section.Siblings:   s.siblings,
		section.Financial:  s.financial,
		section.Essays:     s.essays,
	}

	s.snapshot = Snapshot{Essays: essays}
	for _, ctrl := range s.controllers {
		ctrl.Subscribe(s.receive)
	}

	flowOptions := append([]submission.Option{
		submission.WithLogger(s.logger.With(zap.String("form_kind", string(kind)))),
		submission.OnSuccess(s.Reset),
	}, s.flowOptions...)
	s.flow = submission.NewFlow(s.gateway, flowOptions...)
	return s, nil
}

func (s *Session) receive(name section.Name, state model.State) {
	s.mu.Lock()
	s.snapshot = s.snapshot.reduce(name, state)
	s.mu.Unlock()
}

// Kind returns the form variant.
func (s *Session) Kind() Kind { return s.kind }

// Clock returns the clock used by date validation; nil means time.Now.
func (s *Session) Clock() validation.Clock { return s.clock }

// Model returns the form model rendered for this session.
func (s *Session) Model() model.FormModel { return s.form }

// Snapshot returns the current immutable view of every section.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Sections returns the section states consumed by the aggregator.
func (s *Session) Sections() map[section.Name]model.State {
	return s.Snapshot().Sections()
}

// Controller returns the controller of a section.
func (s *Session) Controller(name section.Name) (section.Controller, bool) {
	ctrl, ok := s.controllers[name]
	return ctrl, ok
}

// Controllers returns every controller in display order.
func (s *Session) Controllers() []section.Controller {
	out := make([]section.Controller, 0, len(s.controllers))
	for _, name := range section.Names() {
		out = append(out, s.controllers[name])
	}
	return out
}

// Update routes a patch to the named section.
func (s *Session) Update(name section.Name, patch section.Patch) error {
	ctrl, ok := s.controllers[name]
	if !ok {
		return fmt.Errorf("%w: %q", section.ErrUnknownSection, name)
	}
	return ctrl.Apply(patch)
}

// Reset restores every section to its initial state.
func (s *Session) Reset() {
	for _, ctrl := range s.Controllers() {
		ctrl.Reset()
	}
}

// Record assembles the submission record of the current snapshot.
func (s *Session) Record() model.SubmissionRecord {
	return s.assembler.Assemble(s.Sections())
}

// Status reports the submission state.
func (s *Session) Status() submission.Status { return s.flow.Status() }

// LastOutcome returns the most recent finished submission attempt.
func (s *Session) LastOutcome() submission.Outcome { return s.flow.Last() }

// Submit validates the form and sends it through the gateway. On success
// every section is reset; on failure the data is kept for a retry.
func (s *Session) Submit(ctx context.Context) (submission.Outcome, error) {
	return s.flow.Submit(ctx, s.Validate, s.Record)
}

// SubmitAsync is Submit with the gateway call on its own goroutine.
func (s *Session) SubmitAsync(ctx context.Context) (<-chan submission.Outcome, error) {
	return s.flow.SubmitAsync(ctx, s.Validate, s.Record)
}

// Wait blocks until asynchronous submissions have finished.
func (s *Session) Wait() { s.flow.Wait() }
