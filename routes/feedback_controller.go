package routes

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/inflate-app/feedback-flow/app"
	"github.com/inflate-app/feedback-flow/database"
	"github.com/inflate-app/feedback-flow/httpx"
	"github.com/inflate-app/feedback-flow/log"
	"github.com/inflate-app/feedback-flow/model"
)

// GetQuestions serves the question set and branding for one order. In mock
// mode every order gets the built-in development set.
func GetQuestions(app app.App) http.HandlerFunc {
	sets := database.NewQuestionSetStore(app.DB)

	return func(w http.ResponseWriter, r *http.Request) {
		orderId := chi.URLParam(r, "orderId")
		if orderId == "" {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.orderId")
			return
		}

		if app.Mock {
			render.JSON(w, r, model.MockPayload())
			return
		}

		payload, err := sets.Get(r.Context(), orderId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "get_questions", orderId)
			} else {
				httpx.LogInternalError(w, "db.get_questions", err)
			}
			return
		}

		render.JSON(w, r, payload)
	}
}

type feedbackRequest struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// PostFeedback stores one completed step. The order id rides on the `order`
// query parameter so the body keeps the plain {questionId, answer} shape.
func PostFeedback(app app.App) http.HandlerFunc {
	feedback := database.NewFeedbackStore(app.DB)

	return func(w http.ResponseWriter, r *http.Request) {
		req := feedbackRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if req.QuestionID == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.feedback", "missing questionId")
			return
		}

		orderId := r.URL.Query().Get("order")

		err = feedback.Save(r.Context(), orderId, req.QuestionID, req.Answer)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_feedback", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"questionId": req.QuestionID,
		})
	}
}
