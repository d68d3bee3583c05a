package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField reports a patch addressed to a field the record does not
	// declare.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrFieldType reports a patch whose value type does not match the field.
	ErrFieldType = errors.New("model: invalid field value type")
)

func unknownField(record, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, record, field)
}

func fieldType(record, field string, value any) error {
	return fmt.Errorf("%w: %s.%s got %T", ErrFieldType, record, field, value)
}

func asString(record, field string, value any) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", fieldType(record, field, value)
	}
	return str, nil
}

func asBool(record, field string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fieldType(record, field, value)
	}
	return b, nil
}
