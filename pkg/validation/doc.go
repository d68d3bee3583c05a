// Package validation holds the pure field validators used to gate submission
// and to reject over-long essay edits. Validators never panic and never
// return errors: a failing value yields a Result with a user-facing message.
package validation
