// Package server is the HTTP shell around the orchestrator. It serves the
// application forms as HTML, a printable summary, a JSON submission API with
// its OpenAPI document, Prometheus metrics and a health probe.
//
// Each request works on a fresh form session: posted values are applied,
// validated and either submitted or echoed back, so no applicant state is
// kept on the server between requests.
package server
