package model

import internalmodel "github.com/goliatone/go-scholarform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

const (
	FormatDate     = internalmodel.FormatDate
	FormatEmail    = internalmodel.FormatEmail
	FormatPhone    = internalmodel.FormatPhone
	FormatTextArea = internalmodel.FormatTextArea
)

const (
	ValidationRuleRequired      = internalmodel.ValidationRuleRequired
	ValidationRuleEmail         = internalmodel.ValidationRuleEmail
	ValidationRuleDateNotFuture = internalmodel.ValidationRuleDateNotFuture
	ValidationRuleMaxWords      = internalmodel.ValidationRuleMaxWords
	ValidationRulePhone         = internalmodel.ValidationRulePhone
	ValidationRulePattern       = internalmodel.ValidationRulePattern
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel

type Definition = internalmodel.Definition
type SectionDefinition = internalmodel.SectionDefinition
type FieldDefinition = internalmodel.FieldDefinition

// DefaultLabeler converts field names such as "dateOfBirth" into labels.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
