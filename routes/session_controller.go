package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/inflate-app/feedback-flow/app"
	"github.com/inflate-app/feedback-flow/database"
	"github.com/inflate-app/feedback-flow/flow"
	"github.com/inflate-app/feedback-flow/httpx"
	"github.com/inflate-app/feedback-flow/log"
	"github.com/inflate-app/feedback-flow/model"
)

// session is one customer walking through a flow, hosted server-side for
// clients too thin to run the state machine themselves.
type session struct {
	id       string
	orderId  string
	flow     *flow.Flow
	branding *model.Branding
	ctaShown bool
}

// SessionRegistry keeps live flow sessions in memory. They are not persisted:
// a session lives exactly as long as the process, same as page-local state.
//
// TODO expire sessions that stopped advancing hours ago
type SessionRegistry struct {
	app      app.App
	feedback *database.FeedbackStore
	sets     *database.QuestionSetStore

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionRegistry(app app.App) *SessionRegistry {
	return &SessionRegistry{
		app:      app,
		feedback: database.NewFeedbackStore(app.DB),
		sets:     database.NewQuestionSetStore(app.DB),
		sessions: map[string]*session{},
	}
}

type createSessionRequest struct {
	OrderID string `json:"orderId"`
	// Score carries the deep-link prefill: a first-question value picked
	// outside the flow, e.g. from an email link.
	Score *int `json:"score,omitempty"`
}

func (reg *SessionRegistry) Create(w http.ResponseWriter, r *http.Request) {
	req := createSessionRequest{}
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
		return
	}

	var payload *model.Payload
	if reg.app.Mock {
		payload = model.MockPayload()
	} else {
		if req.OrderID == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "session.create", "order id is required")
			return
		}
		payload, err = reg.sets.Get(r.Context(), req.OrderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "session.create.get_questions", req.OrderID)
			} else {
				httpx.LogInternalError(w, "db.session.get_questions", err)
			}
			return
		}
	}

	var opts []flow.Option
	if reg.app.StrictSubmit {
		opts = append(opts, flow.StrictSubmit())
	}

	s := &session{
		orderId:  req.OrderID,
		flow:     flow.New(payload.Questions, reg.feedback.Submitter(req.OrderID), opts...),
		branding: payload.Brand(),
	}

	if req.Score != nil {
		if err := s.flow.AutoAnswerFirst(r.Context(), *req.Score); err != nil {
			log.Warnf("session.create.auto_answer: %s", err)
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		httpx.LogInternalError(w, "session.create.uuid", err)
		return
	}
	s.id = id.String()

	reg.mu.Lock()
	reg.sessions[s.id] = s
	view := reg.view(s)
	reg.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, view)
}

func (reg *SessionRegistry) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := reg.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpx.LogNotFound(w, "session.get", chi.URLParam(r, "id"))
		return
	}

	reg.mu.Lock()
	view := reg.view(s)
	reg.mu.Unlock()

	render.JSON(w, r, view)
}

type sessionEvent struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// Event applies one user action to a session's flow: answer, rate, comment,
// confirm, rate-all, advance or restart.
func (reg *SessionRegistry) Event(w http.ResponseWriter, r *http.Request) {
	s, ok := reg.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpx.LogNotFound(w, "session.event", chi.URLParam(r, "id"))
		return
	}

	event := sessionEvent{}
	err := render.DecodeJSON(r.Body, &event)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	err = reg.apply(r, s, event)
	if err != nil {
		switch {
		case errors.Is(err, errBadEvent):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "session.event", "%s", err)
		case errors.Is(err, flow.ErrDone),
			errors.Is(err, flow.ErrBusy),
			errors.Is(err, flow.ErrNoRating),
			errors.Is(err, flow.ErrNotScalarQuestion),
			errors.Is(err, flow.ErrNotProductStep):
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "session.event", "%s", err)
		default:
			// strict submit failure: the step was not stored
			httpx.LogStatusMsg(w, http.StatusBadGateway, log.WarnLevel, "session.event.submit", "%s", err)
		}
		return
	}

	render.JSON(w, r, reg.view(s))
}

var errBadEvent = errors.New("bad event")

func (reg *SessionRegistry) apply(r *http.Request, s *session, event sessionEvent) error {
	ctx := r.Context()

	switch event.Action {
	case "answer":
		var value any
		if err := json.Unmarshal(event.Value, &value); err != nil {
			return errors.Wrap(errBadEvent, "answer: malformed value")
		}
		return s.flow.AnswerScalar(ctx, value)

	case "rate":
		var rating int
		if err := json.Unmarshal(event.Value, &rating); err != nil {
			return errors.Wrap(errBadEvent, "rate: malformed value")
		}
		return s.flow.RateProduct(ctx, rating)

	case "comment":
		var text string
		if err := json.Unmarshal(event.Value, &text); err != nil {
			return errors.Wrap(errBadEvent, "comment: malformed value")
		}
		return s.flow.EditComment(text)

	case "confirm":
		return s.flow.ConfirmComment(ctx)

	case "rate-all":
		var rating int
		if err := json.Unmarshal(event.Value, &rating); err != nil {
			return errors.Wrap(errBadEvent, "rate-all: malformed value")
		}
		if err := s.flow.RateAllProducts(rating); err != nil {
			return err
		}
		return s.flow.FinishProducts(ctx)

	case "advance":
		return s.flow.Advance(ctx)

	case "restart":
		s.flow.Restart()
		s.ctaShown = false
		return nil
	}

	return errors.Wrapf(errBadEvent, "unknown action %q", event.Action)
}

type sessionView struct {
	ID         string          `json:"id"`
	Done       bool            `json:"done"`
	Cursor     flow.Cursor     `json:"cursor"`
	Progress   float64         `json:"progress"`
	TotalSteps int             `json:"totalSteps"`
	Branding   *model.Branding `json:"branding,omitempty"`
	Input      *flow.Input     `json:"input,omitempty"`
	Error      string          `json:"error,omitempty"`
	ReviewLink string          `json:"reviewLink,omitempty"`
}

func (reg *SessionRegistry) view(s *session) sessionView {
	view := sessionView{
		ID:         s.id,
		Done:       s.flow.Done(),
		Cursor:     s.flow.Cursor(),
		Progress:   s.flow.Progress(),
		TotalSteps: s.flow.TotalSteps(),
		Branding:   s.branding,
	}

	if view.Done {
		view.ReviewLink = reg.app.ReviewLink
		if !s.ctaShown {
			s.ctaShown = true
			log.Infof("session.cta_shown: %s", s.id)
		}
		return view
	}

	input, err := s.flow.Input()
	if err != nil {
		// schema validation should have caught this; render a placeholder
		view.Error = "unsupported question type"
		return view
	}
	view.Input = &input

	return view
}

func (reg *SessionRegistry) lookup(id string) (*session, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s, ok := reg.sessions[id]
	return s, ok
}
