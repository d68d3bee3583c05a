// Package tui collects an application interactively in the terminal. Every
// answer goes through the session's section controllers so the same word
// limits and update rules apply as for HTTP input.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

// Intake walks an applicant through every section of a form.
type Intake struct {
	driver      PromptDriver
	out         io.Writer
	theme       Theme
	logger      *zap.Logger
	maxAttempts int
}

// New constructs an Intake backed by survey unless a driver is supplied.
func New(options ...Option) *Intake {
	in := &Intake{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(in)
		}
	}
	if in.driver == nil {
		in.driver = NewSurveyDriver(in.output())
	}
	return in
}

// ChooseKind asks which form variant to fill in.
func (in *Intake) ChooseKind(ctx context.Context, kinds []form.Kind) (form.Kind, error) {
	if len(kinds) == 1 {
		return kinds[0], nil
	}
	options := make([]string, len(kinds))
	for i, kind := range kinds {
		options[i] = string(kind)
	}
	index, err := in.driver.Select(ctx, SelectConfig{
		Message: in.prompt("Which application are you filling in?"),
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(kinds) {
		return "", fmt.Errorf("%w: %d", form.ErrUnknownKind, index)
	}
	return kinds[index], nil
}

// Run prompts for every section, then offers to submit. A failed send can
// be retried without re-entering data. Refusals (missing fields) are
// reported and returned as errors.
func (in *Intake) Run(ctx context.Context, session *form.Session) (submission.Outcome, error) {
	if session == nil {
		return submission.Outcome{}, ErrNoSession
	}
	formModel := session.Model()
	if err := in.info(ctx, formModel.Title); err != nil {
		return submission.Outcome{}, err
	}

	for _, sec := range formModel.Sections {
		name, err := section.ParseName(sec.Name)
		if err != nil {
			return submission.Outcome{}, err
		}
		if err := in.info(ctx, "\n"+sec.Title); err != nil {
			return submission.Outcome{}, err
		}
		if sec.Repeated {
			err = in.promptList(ctx, session, name, sec)
		} else {
			err = in.promptRecord(ctx, session, name, sec)
		}
		if err != nil {
			return submission.Outcome{}, err
		}
	}

	return in.submit(ctx, session)
}

func (in *Intake) submit(ctx context.Context, session *form.Session) (submission.Outcome, error) {
	message := "Submit application?"
	for {
		ok, err := in.driver.Confirm(ctx, ConfirmConfig{Message: in.prompt(message), Default: true})
		if err != nil {
			return submission.Outcome{}, err
		}
		if !ok {
			return submission.Outcome{Status: submission.Idle}, nil
		}

		outcome, err := session.Submit(ctx)
		var notReady *submission.NotReadyError
		if errors.As(err, &notReady) {
			for _, path := range notReady.Issues.Paths() {
				_ = in.problem(ctx, fmt.Sprintf("%s: %s", path, notReady.Issues.First(path)))
			}
			return outcome, err
		}
		if err != nil {
			return outcome, err
		}

		in.logger.Debug("intake submission finished",
			zap.String("attempt_id", outcome.AttemptID),
			zap.Stringer("status", outcome.Status),
		)
		if outcome.OK() {
			return outcome, in.info(ctx, outcome.Message)
		}
		if err := in.problem(ctx, outcome.Message); err != nil {
			return outcome, err
		}
		message = "Retry submission?"
	}
}

func (in *Intake) promptRecord(ctx context.Context, session *form.Session, name section.Name, sec model.Section) error {
	values := session.Snapshot().Values()
	flags := make(map[string]bool)
	for _, field := range sec.Fields {
		if field.RequiredWhen != "" && !flags[field.RequiredWhen] {
			continue
		}
		current := values[sec.Name+"."+field.Name]
		apply := func(value any) error {
			return session.Update(name, section.Set{Field: field.Name, Value: value})
		}
		if err := in.promptField(ctx, session, field, current, flags, apply); err != nil {
			return err
		}
	}
	return nil
}

func (in *Intake) promptList(ctx context.Context, session *form.Session, name section.Name, sec model.Section) error {
	existing := len(session.Sections()[name].Rows())
	if existing > 0 {
		if err := in.info(ctx, fmt.Sprintf("%d entries on file", existing)); err != nil {
			return err
		}
	}

	for index := existing; ; index++ {
		if index >= sec.MinEntries {
			more, err := in.driver.Confirm(ctx, ConfirmConfig{Message: in.prompt(sec.AddLabel + "?")})
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		if err := session.Update(name, section.Add{}); err != nil {
			return err
		}

		flags := make(map[string]bool)
		for _, field := range sec.Fields {
			if field.RequiredWhen != "" && !flags[field.RequiredWhen] {
				continue
			}
			apply := func(value any) error {
				return session.Update(name, section.SetEntry{Index: index, Field: field.Name, Value: value})
			}
			if err := in.promptField(ctx, session, field, nil, flags, apply); err != nil {
				return err
			}
		}
	}
}

func (in *Intake) promptField(ctx context.Context, session *form.Session, field model.Field, current any, flags map[string]bool, apply func(any) error) error {
	if field.Type == model.FieldTypeBoolean {
		def, _ := current.(bool)
		answer, err := in.driver.Confirm(ctx, ConfirmConfig{
			Message: in.prompt(field.Label),
			Default: def,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		flags[field.Name] = answer
		return apply(answer)
	}

	rules := validation.FromModel(field, session.Clock())
	if field.RequiredWhen != "" {
		rules = append([]validation.Rule{validation.Required()}, rules...)
	}
	def, _ := current.(string)

	for attempt := 1; ; attempt++ {
		answer, err := in.ask(ctx, field, def)
		if err != nil {
			return err
		}

		result := validation.Rules(answer, rules...)
		if result.Valid {
			err = apply(answer)
			if errors.Is(err, section.ErrWordLimitExceeded) {
				result = validation.MaxWords(field.MaxWords).Check(answer)
			} else if err != nil {
				return err
			}
		}
		if result.Valid {
			if field.MaxWords > 0 {
				return in.info(ctx, fmt.Sprintf("%d/%d words", validation.WordCount(answer), field.MaxWords))
			}
			return nil
		}

		if err := in.problem(ctx, fmt.Sprintf("%s: %s", field.Label, result.Message)); err != nil {
			return err
		}
		if in.maxAttempts > 0 && attempt >= in.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
		def = answer
	}
}

func (in *Intake) ask(ctx context.Context, field model.Field, def string) (string, error) {
	if field.Format == model.FormatTextArea {
		help := field.Description
		if field.MaxWords > 0 {
			help = strings.TrimSpace(fmt.Sprintf("Up to %d words. %s", field.MaxWords, help))
		}
		return in.driver.TextArea(ctx, TextAreaConfig{
			Message: in.prompt(field.Label),
			Default: def,
			Help:    help,
		})
	}
	answer, err := in.driver.Input(ctx, InputConfig{
		Message: in.prompt(field.Label),
		Default: def,
		Help:    field.Description,
	})
	return strings.TrimSpace(answer), err
}

func (in *Intake) prompt(message string) string {
	return in.theme.PromptPrefix + message
}

func (in *Intake) info(ctx context.Context, message string) error {
	return in.driver.Info(ctx, in.theme.InfoPrefix+message)
}

func (in *Intake) problem(ctx context.Context, message string) error {
	return in.driver.Info(ctx, in.theme.ErrorPrefix+message)
}

func (in *Intake) output() io.Writer {
	if in.out == nil {
		return os.Stdout
	}
	return in.out
}
