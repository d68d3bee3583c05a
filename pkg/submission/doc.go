// Package submission implements the submit state machine shared by every
// presentation surface. A Flow gates a submit on required-field validation,
// makes exactly one Gateway call per accepted attempt and reports the outcome
// as a user-facing message. Failed attempts keep the form data; successful
// ones run the registered reset hooks.
package submission
