package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/inflate-app/feedback-flow/log"
	"github.com/inflate-app/feedback-flow/model"
)

var (
	// ErrDone signals an operation on a flow that already ran to completion.
	ErrDone = errors.New("flow: already done")
	// ErrBusy signals that a submission for the current step is in flight.
	ErrBusy = errors.New("flow: submission in flight")
	// ErrNoRating blocks leaving the rating phase before a rating exists.
	ErrNoRating = errors.New("flow: no rating recorded for current product")
	// ErrNotScalarQuestion rejects a scalar answer on a products question.
	ErrNotScalarQuestion = errors.New("flow: current question is not scalar")
	// ErrNotProductStep rejects a product operation outside a products question.
	ErrNotProductStep = errors.New("flow: current step is not a product step")
)

// Phase is the sub-step inside a products question: first the star rating,
// then the free-text comment.
type Phase int

const (
	PhaseRating Phase = iota
	PhaseComment
)

func (p Phase) String() string {
	if p == PhaseComment {
		return "comment"
	}
	return "rating"
}

// Cursor is the current position in the survey: the top-level question index,
// plus the product sub-cursor, which only means anything while the question
// at Question is of type products. Question == len(questions) is the done
// state.
type Cursor struct {
	Question int   `json:"question"`
	Product  int   `json:"product"`
	Phase    Phase `json:"phase"`
}

// Submitter hands one completed step to the external delivery mechanism.
type Submitter interface {
	Submit(ctx context.Context, stepID string, answer any) error
}

// SubmitterFunc adapts a plain function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, stepID string, answer any) error

func (f SubmitterFunc) Submit(ctx context.Context, stepID string, answer any) error {
	return f(ctx, stepID, answer)
}

// ProductAnswer is the payload submitted for one product step.
type ProductAnswer struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Flow drives one customer through a question sequence. It owns the cursor
// and the answer store; every transition goes through its methods. The
// questions are assumed to have passed model.ValidateQuestions already.
//
// Submission is optimistic by default: a failed POST is logged and the step
// stays unsubmitted, but the cursor still advances. StrictSubmit flips that
// to blocking on failure.
type Flow struct {
	questions []model.Question
	answers   *Answers
	cursor    Cursor
	submitter Submitter

	strict       bool
	autoAnswered bool
	sending      bool
}

type Option func(*Flow)

// StrictSubmit makes every advance that submits block on submission failure.
func StrictSubmit() Option {
	return func(f *Flow) { f.strict = true }
}

func New(questions []model.Question, submitter Submitter, opts ...Option) *Flow {
	f := &Flow{
		questions: questions,
		answers:   NewAnswers(),
		submitter: submitter,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.skipEmptyProducts()
	return f
}

func (f *Flow) Answers() *Answers { return f.answers }

func (f *Flow) Cursor() Cursor { return f.cursor }

func (f *Flow) Questions() []model.Question { return f.questions }

func (f *Flow) Sending() bool { return f.sending }

// Done reports whether the cursor moved past the last question.
func (f *Flow) Done() bool {
	return f.cursor.Question >= len(f.questions)
}

// Current returns the question under the cursor.
func (f *Flow) Current() (model.Question, bool) {
	if f.Done() {
		return model.Question{}, false
	}
	return f.questions[f.cursor.Question], true
}

// Advance moves the cursor one step forward.
//
// On a non-product question the top-level index moves. On a products question
// the sub-cursor walks (0,rating),(0,comment),...,(n-1,comment) before the
// top-level index moves; leaving the rating phase requires a recorded rating,
// and leaving the comment phase submits the product's rating+comment pair.
func (f *Flow) Advance(ctx context.Context) error {
	if f.Done() {
		return ErrDone
	}
	if f.sending {
		return ErrBusy
	}

	q := f.questions[f.cursor.Question]
	if q.Type != model.TypeProducts {
		f.nextQuestion()
		return nil
	}

	p := q.Products[f.cursor.Product]
	switch f.cursor.Phase {
	case PhaseRating:
		if f.answers.Rating(p.ID) == 0 {
			return ErrNoRating
		}
		f.cursor.Phase = PhaseComment

	case PhaseComment:
		comment, _ := f.answers.Comment(p.ID)
		err := f.submit(ctx, "product:"+p.ID, ProductAnswer{
			Rating:  f.answers.Rating(p.ID),
			Comment: comment,
		})
		if err != nil && f.strict {
			return err
		}

		if f.cursor.Product >= len(q.Products)-1 {
			f.nextQuestion()
		} else {
			f.cursor.Product++
			f.cursor.Phase = PhaseRating
		}
	}
	return nil
}

// AnswerScalar records, submits and advances past the current non-product
// question in one go, mirroring a single click or confirmed input.
func (f *Flow) AnswerScalar(ctx context.Context, value any) error {
	q, ok := f.Current()
	if !ok {
		return ErrDone
	}
	if q.Type == model.TypeProducts {
		return ErrNotScalarQuestion
	}
	if f.sending {
		return ErrBusy
	}

	f.answers.SetScalar(q.ID, value)
	if err := f.submit(ctx, q.ID, value); err != nil && f.strict {
		return err
	}
	return f.Advance(ctx)
}

// RateProduct records the current product's star rating and moves the
// sub-cursor to the comment phase. Nothing is submitted yet: the pair goes
// out when the comment is confirmed.
func (f *Flow) RateProduct(ctx context.Context, rating int) error {
	p, err := f.currentProduct(PhaseRating)
	if err != nil {
		return err
	}
	f.answers.SetProductRating(p.ID, rating)
	return f.Advance(ctx)
}

// EditComment overwrites the current product's comment draft. Safe to call on
// every keystroke.
func (f *Flow) EditComment(text string) error {
	p, err := f.currentProduct(PhaseComment)
	if err != nil {
		return err
	}
	f.answers.SetProductComment(p.ID, text)
	return nil
}

// ConfirmComment submits the current product's rating+comment pair and moves
// on to the next product, or past the products question.
func (f *Flow) ConfirmComment(ctx context.Context) error {
	if _, err := f.currentProduct(PhaseComment); err != nil {
		return err
	}
	return f.Advance(ctx)
}

// RateAllProducts gives every product of the current products question the
// same rating and the matching default comment. Repeated calls fully
// overwrite, never merge.
func (f *Flow) RateAllProducts(rating int) error {
	q, ok := f.Current()
	if !ok {
		return ErrDone
	}
	if q.Type != model.TypeProducts {
		return ErrNotProductStep
	}
	for _, p := range q.Products {
		f.answers.SetProductRating(p.ID, rating)
		f.answers.SetProductComment(p.ID, DefaultComment(rating))
	}
	return nil
}

// FinishProducts walks the remaining sub-steps of the current products
// question, submitting each product pair in order, until the top-level index
// moves. Together with RateAllProducts it implements the "rate all" shortcut.
func (f *Flow) FinishProducts(ctx context.Context) error {
	q, ok := f.Current()
	if !ok {
		return ErrDone
	}
	if q.Type != model.TypeProducts {
		return ErrNotProductStep
	}

	start := f.cursor.Question
	for !f.Done() && f.cursor.Question == start {
		if err := f.Advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AutoAnswerFirst plays a value embedded in the survey link (an NPS score
// picked from an email) as if the customer had clicked it. It runs at most
// once, and only when the flow still sits untouched on a leading nps or
// scale question; otherwise it is a no-op.
func (f *Flow) AutoAnswerFirst(ctx context.Context, value int) error {
	if f.autoAnswered || f.cursor.Question != 0 {
		return nil
	}
	q, ok := f.Current()
	if !ok {
		return nil
	}
	if q.Type != model.TypeNPS && q.Type != model.TypeScale {
		return nil
	}
	if _, answered := f.answers.Scalar(q.ID); answered {
		return nil
	}

	f.autoAnswered = true
	return f.AnswerScalar(ctx, value)
}

// Restart resets the cursor and clears every answer and submission flag.
func (f *Flow) Restart() {
	f.cursor = Cursor{}
	f.answers.Reset()
	f.skipEmptyProducts()
}

func (f *Flow) currentProduct(phase Phase) (model.Product, error) {
	q, ok := f.Current()
	if !ok {
		return model.Product{}, ErrDone
	}
	if q.Type != model.TypeProducts || f.cursor.Phase != phase {
		return model.Product{}, ErrNotProductStep
	}
	return q.Products[f.cursor.Product], nil
}

func (f *Flow) nextQuestion() {
	f.cursor.Question++
	f.cursor.Product = 0
	f.cursor.Phase = PhaseRating
	f.skipEmptyProducts()
}

// A products question without products has zero sub-steps: the cursor never
// rests on it.
func (f *Flow) skipEmptyProducts() {
	for !f.Done() {
		q := f.questions[f.cursor.Question]
		if q.Type != model.TypeProducts || len(q.Products) > 0 {
			return
		}
		f.cursor.Question++
	}
}

func (f *Flow) submit(ctx context.Context, stepID string, answer any) error {
	f.sending = true
	defer func() { f.sending = false }()

	if err := f.submitter.Submit(ctx, stepID, answer); err != nil {
		log.Errorf("flow.submit.%s: %s", stepID, err)
		return fmt.Errorf("submit %s: %w", stepID, err)
	}
	f.answers.MarkSubmitted(stepID)
	return nil
}
