// Package model defines the applicant data model and the typed form model
// consumed by renderers.
//
// Applicant records (PersonalInfo, AcademicEntry, EmploymentEntry,
// GuardianEntry, SiblingEntry, FinancialSummary and Essays) are immutable
// values: With returns a patched copy and Pairs lists the fields in display
// order. Section state is exposed through the State interface so scalar and
// list sections can be read uniformly, and SubmissionRecord is the flat,
// read-only payload handed to gateways.
//
// The form model (FormModel, Section, Field) is produced by a Builder from a
// Definition. Builders reside in internal/model but return the types defined
// here. Validation rules expose canonical identifiers (required, email, phone,
// dateNotFuture, maxWords, pattern) with string parameters so renderers can
// map them onto HTML attributes or terminal prompts.
package model
