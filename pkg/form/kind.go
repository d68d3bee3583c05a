package form

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects an application form variant.
type Kind string

const (
	Trade      Kind = "trade"
	University Kind = "university"
)

// ErrUnknownKind reports an unsupported form variant.
var ErrUnknownKind = errors.New("form: unknown form kind")

// Kinds returns every supported variant.
func Kinds() []Kind {
	return []Kind{Trade, University}
}

// ParseKind resolves a variant name case-insensitively.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case Trade:
		return Trade, nil
	case University:
		return University, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

func (k Kind) String() string { return string(k) }
