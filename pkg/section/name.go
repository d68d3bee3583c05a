package section

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a form section.
type Name string

const (
	Personal   Name = "personal"
	Academic   Name = "academic"
	Employment Name = "employment"
	Guardians  Name = "guardians"
	Siblings   Name = "siblings"
	Financial  Name = "financial"
	Essays     Name = "essays"
)

// ErrUnknownSection reports a section name outside the known set.
var ErrUnknownSection = errors.New("section: unknown section")

var order = []Name{Personal, Academic, Employment, Guardians, Siblings, Financial, Essays}

// Names returns every section in display order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// ParseName resolves a section name case-insensitively.
func ParseName(raw string) (Name, error) {
	candidate := Name(strings.ToLower(strings.TrimSpace(raw)))
	for _, name := range order {
		if name == candidate {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
}

func (n Name) String() string { return string(n) }
