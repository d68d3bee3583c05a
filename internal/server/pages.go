package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	"github.com/goliatone/go-scholarform/pkg/render"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
	printrenderer "github.com/goliatone/go-scholarform/pkg/renderers/print"
	"github.com/goliatone/go-scholarform/pkg/section"
	"github.com/goliatone/go-scholarform/pkg/submission"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

// actionField carries list edits posted by the add and remove buttons.
const actionField = "_action"

// ErrInvalidAction reports an unparseable list edit.
var ErrInvalidAction = errors.New("server: invalid entry action")

type kindLink struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Href    string `json:"href"`
	Enabled bool   `json:"enabled"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var links []kindLink
	for _, kind := range form.Kinds() {
		def, err := form.Definition(kind)
		if err != nil {
			continue
		}
		links = append(links, kindLink{
			Kind:    kind.String(),
			Title:   def.Title,
			Href:    "/forms/" + kind.String(),
			Enabled: s.orch.Enabled(kind),
		})
	}

	page, err := s.pages.RenderTemplate("templates/home", map[string]any{
		"title":         homeTitle,
		"kinds":         links,
		"stylesheetURL": "/assets/" + htmlrenderer.StylesheetName,
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.api.Raw())
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.page(w, r, http.StatusOK, orchestrator.Request{Session: session})
}

// handleSubmit applies the posted values and sends the application. The
// form is re-rendered with the outcome: emptied on success, kept on failure.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.postedSession(w, r)
	if !ok {
		return
	}
	if issues := session.Apply(r.PostForm); len(issues) > 0 {
		s.page(w, r, http.StatusUnprocessableEntity, orchestrator.Request{Session: session, Issues: issues})
		return
	}

	outcome, err := s.submit(r.Context(), session)
	var notReady *submission.NotReadyError
	switch {
	case errors.As(err, &notReady):
		s.page(w, r, http.StatusUnprocessableEntity, orchestrator.Request{Session: session, Issues: notReady.Issues})
	case err != nil:
		s.serverError(w, r, err)
	case outcome.OK():
		s.page(w, r, http.StatusOK, orchestrator.Request{Session: session, Outcome: &outcome})
	default:
		s.page(w, r, http.StatusBadGateway, orchestrator.Request{Session: session, Outcome: &outcome})
	}
}

// handleEntries adds or removes a list entry and echoes the form back.
// Actions look like "add:academic" or "remove:academic:0".
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	session, ok := s.postedSession(w, r)
	if !ok {
		return
	}
	issues := session.Apply(r.PostForm)

	name, patch, err := parseAction(r.PostForm.Get(actionField))
	if err == nil {
		err = session.Update(name, patch)
	}
	if err != nil {
		s.logger.Debug("rejected entry action", zap.String("action", r.PostForm.Get(actionField)), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.page(w, r, http.StatusOK, orchestrator.Request{Session: session, Issues: issues})
}

// handlePrint renders the printable summary of the posted values. A GET
// prints the empty form.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var (
		session *form.Session
		ok      bool
		issues  validation.Issues
	)
	if r.Method == http.MethodPost {
		session, ok = s.postedSession(w, r)
		if !ok {
			return
		}
		issues = session.Apply(r.PostForm)
	} else {
		session, ok = s.session(w, r)
		if !ok {
			return
		}
	}
	s.page(w, r, http.StatusOK, orchestrator.Request{
		Session:  session,
		Renderer: printrenderer.Name,
		Issues:   issues,
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*form.Session, bool) {
	session, err := s.orch.NewSession(form.Kind(mux.Vars(r)["kind"]))
	switch {
	case errors.Is(err, form.ErrUnknownKind), errors.Is(err, orchestrator.ErrKindDisabled):
		http.NotFound(w, r)
		return nil, false
	case err != nil:
		s.serverError(w, r, err)
		return nil, false
	}
	return session, true
}

func (s *Server) postedSession(w http.ResponseWriter, r *http.Request) (*form.Session, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return nil, false
	}
	return s.session(w, r)
}

// submit sends the session and records the attempt in the metrics.
func (s *Server) submit(ctx context.Context, session *form.Session) (submission.Outcome, error) {
	kind := session.Kind().String()
	outcome, err := session.Submit(ctx)
	switch {
	case errors.Is(err, submission.ErrNotReady):
		s.metrics.submissions.WithLabelValues(kind, outcomeRejected).Inc()
	case err != nil:
		// not an attempt
	case outcome.OK():
		s.metrics.submissions.WithLabelValues(kind, outcomeSucceeded).Inc()
		s.metrics.duration.WithLabelValues(kind).Observe(outcome.Duration.Seconds())
	default:
		s.metrics.submissions.WithLabelValues(kind, outcomeFailed).Inc()
		s.metrics.duration.WithLabelValues(kind).Observe(outcome.Duration.Seconds())
	}
	return outcome, err
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, req orchestrator.Request) {
	req.RenderOptions.HiddenFields = render.MergeHiddenFields(
		req.RenderOptions.HiddenFields,
		render.CSRFToken(s.csrfField, csrf.Token(r)),
	)
	name := req.Renderer
	if name == "" {
		name = htmlrenderer.Name
		req.Renderer = name
	}
	renderer, err := s.orch.Registry().Get(name)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	body, err := s.orch.Render(r.Context(), req)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) pageTooManyRequests(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("submission throttled", zap.String("client", clientKey(r)))
	http.Error(w, "Too many submissions, please try again later.", http.StatusTooManyRequests)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func parseAction(raw string) (section.Name, section.Patch, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidAction, raw)
	}
	name, err := section.ParseName(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	switch {
	case parts[0] == "add" && len(parts) == 2:
		return name, section.Add{}, nil
	case parts[0] == "remove" && len(parts) == 3:
		index, err := strconv.Atoi(parts[2])
		if err != nil || index < 0 {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidAction, raw)
		}
		return name, section.Remove{Index: index}, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidAction, raw)
	}
}
