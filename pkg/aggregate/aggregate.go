// Package aggregate flattens section state into the submission record handed
// to gateways. Scalar sections pass through field by field; list sections are
// rendered into one text block each.
package aggregate

import (
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/section"
)

// Record keys of the list section text blocks.
const (
	SchoolDetailsKey     = "schoolDetailsString"
	EmploymentDetailsKey = "employmentDetailsString"
	GuardianDetailsKey   = "guardianDetailsString"
	SiblingDetailsKey    = "siblingDetailsString"
)

const (
	fieldSeparator = ", "
	entrySeparator = "\n"
)

var detailKeys = map[section.Name]string{
	section.Academic:   SchoolDetailsKey,
	section.Employment: EmploymentDetailsKey,
	section.Guardians:  GuardianDetailsKey,
	section.Siblings:   SiblingDetailsKey,
}

// DetailKey returns the record key holding the text block of a list section.
func DetailKey(name section.Name) string {
	if key, ok := detailKeys[name]; ok {
		return key
	}
	return string(name) + "DetailsString"
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSanitizer strips markup from every text value using policy. A nil
// policy selects bluemonday's strict policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(a *Assembler) {
		if policy == nil {
			policy = bluemonday.StrictPolicy()
		}
		a.policy = policy
	}
}

// WithExtra adds a static text value to every record, such as the form
// variant. Section values win on key collisions.
func WithExtra(key, value string) Option {
	return func(a *Assembler) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if a.extras == nil {
			a.extras = make(map[string]string)
		}
		a.extras[key] = value
	}
}

// Assembler builds submission records. It holds no per-call state and is
// safe for concurrent use.
type Assembler struct {
	policy *bluemonday.Policy
	extras map[string]string
}

// New constructs an Assembler.
func New(options ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Assemble flattens sections with the default Assembler.
func Assemble(sections map[section.Name]model.State) model.SubmissionRecord {
	return New().Assemble(sections)
}

// Assemble flattens sections into a record. It performs no validation and
// returns equal records for equal input.
func (a *Assembler) Assemble(sections map[section.Name]model.State) model.SubmissionRecord {
	builder := model.NewRecordBuilder()
	for key, value := range a.extras {
		builder.String(key, a.clean(value))
	}

	for _, name := range orderedNames(sections) {
		state := sections[name]
		if state == nil {
			continue
		}
		if state.Repeated() {
			builder.String(DetailKey(name), a.details(state.Rows()))
			continue
		}
		for _, row := range state.Rows() {
			for _, pair := range row {
				switch value := pair.Value.(type) {
				case bool:
					builder.Bool(pair.Key, value)
				case string:
					builder.String(pair.Key, a.clean(value))
				}
			}
		}
	}
	return builder.Build()
}

func (a *Assembler) details(rows [][]model.Pair) string {
	entries := make([]string, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, a.entry(row))
	}
	return strings.Join(entries, entrySeparator)
}

func (a *Assembler) entry(row []model.Pair) string {
	parts := make([]string, 0, len(row))
	for _, pair := range row {
		if pair.Optional && pair.Empty() {
			continue
		}
		var value string
		switch v := pair.Value.(type) {
		case bool:
			value = yesNo(v)
		case string:
			value = a.clean(v)
		}
		parts = append(parts, pair.Label+": "+value)
	}
	return strings.Join(parts, fieldSeparator)
}

func (a *Assembler) clean(text string) string {
	if a.policy == nil || text == "" {
		return text
	}
	return html.UnescapeString(a.policy.Sanitize(text))
}

func yesNo(flag bool) string {
	if flag {
		return "Yes"
	}
	return "No"
}

// orderedNames lists known sections in display order followed by any other
// names sorted alphabetically.
func orderedNames(sections map[section.Name]model.State) []section.Name {
	names := make([]section.Name, 0, len(sections))
	seen := make(map[section.Name]struct{}, len(sections))
	for _, name := range section.Names() {
		if _, ok := sections[name]; ok {
			names = append(names, name)
			seen[name] = struct{}{}
		}
	}
	var rest []section.Name
	for name := range sections {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(names, rest...)
}
