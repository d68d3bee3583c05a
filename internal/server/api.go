package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/internal/openapi"
	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

const maxBodyBytes = 1 << 20

type submissionRequest struct {
	Values map[string]any `json:"values"`
}

type submissionResult struct {
	Status    string            `json:"status"`
	AttemptID string            `json:"attemptId,omitempty"`
	Message   string            `json:"message,omitempty"`
	Detail    string            `json:"detail,omitempty"`
	Issues    validation.Issues `json:"issues,omitempty"`
}

type problem struct {
	Error string `json:"error"`
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, problem{Error: "unreadable request body"})
		return
	}
	var generic any
	if err := json.Unmarshal(payload, &generic); err != nil {
		writeJSON(w, http.StatusBadRequest, problem{Error: "malformed JSON: " + err.Error()})
		return
	}
	if err := s.api.ValidateValue(openapi.SubmissionRequestSchema, generic); err != nil {
		writeJSON(w, http.StatusBadRequest, problem{Error: err.Error()})
		return
	}
	var req submissionRequest
	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, problem{Error: "malformed JSON: " + err.Error()})
		return
	}

	session, err := s.orch.NewSession(form.Kind(mux.Vars(r)["kind"]))
	switch {
	case errors.Is(err, form.ErrUnknownKind), errors.Is(err, orchestrator.ErrKindDisabled):
		writeJSON(w, http.StatusNotFound, problem{Error: err.Error()})
		return
	case err != nil:
		s.logger.Error("open session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, problem{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}

	if issues := session.Apply(postedValues(req.Values)); len(issues) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, submissionResult{Status: submission.Idle.String(), Issues: issues})
		return
	}

	outcome, err := s.submit(r.Context(), session)
	var notReady *submission.NotReadyError
	switch {
	case errors.As(err, &notReady):
		writeJSON(w, http.StatusUnprocessableEntity, submissionResult{Status: submission.Idle.String(), Issues: notReady.Issues})
	case err != nil:
		s.logger.Error("submit", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, problem{Error: err.Error()})
	default:
		status := http.StatusOK
		if !outcome.OK() {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, submissionResult{
			Status:    outcome.Status.String(),
			AttemptID: outcome.AttemptID,
			Message:   outcome.Message,
			Detail:    outcome.Detail,
		})
	}
}

func (s *Server) apiTooManyRequests(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("submission throttled", zap.String("client", clientKey(r)))
	writeJSON(w, http.StatusTooManyRequests, problem{Error: "too many submissions"})
}

// postedValues converts API values to the posted form shape: strings pass
// through, true becomes a checked box and false is left out.
func postedValues(values map[string]any) map[string][]string {
	out := make(map[string][]string, len(values))
	for path, value := range values {
		switch v := value.(type) {
		case string:
			out[path] = []string{v}
		case bool:
			if v {
				out[path] = []string{"on"}
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
