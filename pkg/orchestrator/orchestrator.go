package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scholarform/pkg/aggregate"
	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/render"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
	printrenderer "github.com/goliatone/go-scholarform/pkg/renderers/print"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

const defaultRendererName = htmlrenderer.Name

// ErrKindDisabled reports a session requested for a form kind that is not
// enabled.
var ErrKindDisabled = errors.New("orchestrator: form kind is not enabled")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithGateway sets the gateway used by every session.
func WithGateway(gateway submission.Gateway) Option {
	return func(o *Orchestrator) {
		o.gateway = gateway
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithClock sets the clock used for date validation.
func WithClock(clock validation.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithLogger sets the logger handed to sessions.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithThemeConfig sets the theme used when a request carries none.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithThemeManifest resolves manifest and variant into the default theme.
func WithThemeManifest(manifest *theme.Manifest, variant string) Option {
	return func(o *Orchestrator) {
		cfg, err := render.ResolveTheme(manifest, variant, render.DefaultThemeFallbacks())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: resolve theme: %w", err)
			return
		}
		o.theme = cfg
	}
}

// WithSanitizer sets the policy applied to free text in submission records.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.sanitizer = policy
	}
}

// WithUIDecorators registers decorators that run against every built form
// model.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithFlowOptions forwards options to every session's submission flow.
func WithFlowOptions(options ...submission.Option) Option {
	return func(o *Orchestrator) {
		o.flowOptions = append(o.flowOptions, options...)
	}
}

// WithHTMLOptions configures the default HTML renderer. It has no effect
// together with WithRegistry.
func WithHTMLOptions(options ...htmlrenderer.Option) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, options...)
	}
}

// WithKinds restricts the form kinds sessions may be opened for.
func WithKinds(kinds ...form.Kind) Option {
	return func(o *Orchestrator) {
		o.kinds = append([]form.Kind(nil), kinds...)
	}
}

// Orchestrator opens sessions and renders them. It applies sensible
// defaults (html and print renderers, every form kind) while remaining open
// to dependency injection.
type Orchestrator struct {
	gateway         submission.Gateway
	registry        *render.Registry
	defaultRenderer string
	clock           validation.Clock
	logger          *zap.Logger
	theme           *theme.RendererConfig
	sanitizer       *bluemonday.Policy
	decorators      []model.Decorator
	builder         model.Builder
	flowOptions     []submission.Option
	htmlOptions     []htmlrenderer.Option
	kinds           []form.Kind
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Err reports a configuration error recorded during construction.
func (o *Orchestrator) Err() error { return o.initialiseErr }

// Kinds lists the enabled form kinds.
func (o *Orchestrator) Kinds() []form.Kind {
	return append([]form.Kind(nil), o.kinds...)
}

// Enabled reports whether sessions can be opened for kind.
func (o *Orchestrator) Enabled(kind form.Kind) bool {
	return slices.Contains(o.kinds, kind)
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// NewSession opens an empty session for kind.
func (o *Orchestrator) NewSession(kind form.Kind) (*form.Session, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if _, err := form.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if !o.Enabled(kind) {
		return nil, fmt.Errorf("%w: %q", ErrKindDisabled, kind)
	}

	assembler := aggregate.New(
		aggregate.WithSanitizer(o.sanitizer),
		aggregate.WithExtra("formKind", string(kind)),
	)
	session, err := form.NewSession(kind,
		form.WithClock(o.clock),
		form.WithLogger(o.logger),
		form.WithGateway(o.gateway),
		form.WithAssembler(assembler),
		form.WithModelBuilder(decoratingBuilder{builder: o.builder, decorators: o.decorators}),
		form.WithFlowOptions(o.flowOptions...),
	)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: new session: %w", err)
	}
	return session, nil
}

// Request describes one render of a session.
type Request struct {
	Session *form.Session

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Issues are validation problems to surface next to their fields.
	Issues validation.Issues

	// Outcome is the submit attempt to report in the status banner.
	Outcome *submission.Outcome

	// RenderOptions carries per-request overrides. Values and Entries default
	// to the session snapshot and Theme to the orchestrator theme.
	RenderOptions render.RenderOptions
}

// Render draws the session's form with the renderer named by req.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Session == nil {
		return nil, errors.New("orchestrator: session is required")
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	formModel := req.Session.Model()
	opts := o.renderOptions(formModel, req)
	output, err := renderer.Render(ctx, formModel, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) renderOptions(formModel model.FormModel, req Request) render.RenderOptions {
	opts := req.RenderOptions
	snapshot := req.Session.Snapshot()
	if opts.Values == nil {
		opts.Values = snapshot.Values()
	}
	if opts.Entries == nil {
		opts.Entries = snapshot.EntryCounts()
	}
	if opts.Theme == nil {
		opts.Theme = o.theme
	}

	if len(req.Issues) > 0 {
		mapping := render.MapIssues(formModel, req.Issues)
		errs := make(map[string][]string, len(opts.Errors)+len(mapping.Fields))
		for path, messages := range opts.Errors {
			errs[path] = append(errs[path], messages...)
		}
		for path, messages := range mapping.Fields {
			errs[path] = append(errs[path], messages...)
		}
		opts.Errors = errs
		opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
	}

	if opts.Status == nil && req.Outcome != nil {
		opts.Status = StatusFor(*req.Outcome)
	}
	if req.Session.Status() == submission.Submitting {
		opts.Submitting = true
	}
	return opts
}

// StatusFor converts a finished attempt into a status banner; refusals and
// unfinished attempts have none.
func StatusFor(outcome submission.Outcome) *render.Status {
	switch outcome.Status {
	case submission.Succeeded:
		return &render.Status{Kind: render.StatusSuccess, Message: outcome.Message}
	case submission.Failed:
		return &render.Status{Kind: render.StatusError, Message: outcome.Message}
	case submission.Submitting:
		return &render.Status{Kind: render.StatusSubmitting, Message: "Submitting..."}
	default:
		return nil
	}
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if len(o.kinds) == 0 {
		o.kinds = form.Kinds()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	o.registry = render.NewRegistry()
	html, err := htmlrenderer.New(o.htmlOptions...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(html)

	printable, err := printrenderer.New(printrenderer.WithClock(o.clock))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: print renderer: %w", err)
		return
	}
	o.registry.MustRegister(printable)
}

type decoratingBuilder struct {
	builder    model.Builder
	decorators []model.Decorator
}

func (b decoratingBuilder) Build(def model.Definition) (model.FormModel, error) {
	built, err := b.builder.Build(def)
	if err != nil {
		return model.FormModel{}, err
	}
	for _, decorator := range b.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&built); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return built, nil
}
