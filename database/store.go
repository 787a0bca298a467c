package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/inflate-app/feedback-flow/flow"
	"github.com/inflate-app/feedback-flow/model"
)

// FeedbackStore persists completed survey steps.
type FeedbackStore struct {
	db *sql.DB
}

func NewFeedbackStore(db *sql.DB) *FeedbackStore {
	return &FeedbackStore{db}
}

func (s *FeedbackStore) Save(ctx context.Context, orderID, stepID string, answer any) error {
	answerJson, err := json.Marshal(answer)
	if err != nil {
		return errors.Wrap(err, "save feedback")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO feedback (order_id, step_id, answer, time) VALUES (?, ?, ?, ?)`,
		orderID,
		stepID,
		string(answerJson),
		time.Now(),
	)
	return errors.Wrap(err, "save feedback")
}

// Submitter binds the store to one order, for flows hosted server-side.
func (s *FeedbackStore) Submitter(orderID string) flow.Submitter {
	return flow.SubmitterFunc(func(ctx context.Context, stepID string, answer any) error {
		return s.Save(ctx, orderID, stepID, answer)
	})
}

// QuestionSetStore keeps the per-order question set and branding payload.
type QuestionSetStore struct {
	db *sql.DB
}

func NewQuestionSetStore(db *sql.DB) *QuestionSetStore {
	return &QuestionSetStore{db}
}

func (s *QuestionSetStore) Get(ctx context.Context, orderID string) (*model.Payload, error) {
	var questionsJson string
	var brandingJson sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT questions, branding FROM question_set WHERE order_id = ?`,
		orderID,
	).Scan(&questionsJson, &brandingJson)
	if err != nil {
		return nil, err
	}

	questions, err := model.ParseQuestions([]byte(questionsJson))
	if err != nil {
		return nil, err
	}

	payload := model.Payload{Questions: questions}
	if brandingJson.Valid && brandingJson.String != "" {
		if err := json.Unmarshal([]byte(brandingJson.String), &payload.Branding); err != nil {
			return nil, errors.Wrap(err, "get question set")
		}
	}
	return &payload, nil
}

func (s *QuestionSetStore) Put(ctx context.Context, orderID string, payload *model.Payload) error {
	questionsJson, err := json.Marshal(payload.Questions)
	if err != nil {
		return errors.Wrap(err, "put question set")
	}
	brandingJson, err := json.Marshal(payload.Branding)
	if err != nil {
		return errors.Wrap(err, "put question set")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO question_set (order_id, questions, branding) VALUES (?, ?, ?)
		ON CONFLICT (order_id) DO UPDATE SET questions = excluded.questions, branding = excluded.branding`,
		orderID,
		string(questionsJson),
		string(brandingJson),
	)
	return errors.Wrap(err, "put question set")
}
