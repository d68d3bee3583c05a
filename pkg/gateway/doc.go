// Package gateway groups the submission.Gateway implementations: emailjs
// relays records through the EmailJS REST API, smtp mails them directly and
// logsink only logs them.
package gateway
