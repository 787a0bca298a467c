package flow

// Answers is the in-memory record of everything the customer answered so far.
// Scalar answers are keyed by question id, product ratings and comments by
// product id. Nothing is persisted: the store lives and dies with the flow.
type Answers struct {
	scalars   map[string]any
	ratings   map[string]int
	comments  map[string]string
	submitted map[string]bool
}

func NewAnswers() *Answers {
	return &Answers{
		scalars:   map[string]any{},
		ratings:   map[string]int{},
		comments:  map[string]string{},
		submitted: map[string]bool{},
	}
}

// SetScalar records or overwrites the answer of a non-product question.
func (a *Answers) SetScalar(questionID string, value any) {
	a.scalars[questionID] = value
}

func (a *Answers) Scalar(questionID string) (any, bool) {
	v, ok := a.scalars[questionID]
	return v, ok
}

// SetProductRating records a 1–5 star rating. When the product has no comment
// yet, a default one derived from the rating is filled in, so the comment box
// never starts blank.
func (a *Answers) SetProductRating(productID string, rating int) {
	a.ratings[productID] = rating
	if _, ok := a.comments[productID]; !ok {
		a.comments[productID] = DefaultComment(rating)
	}
}

// Rating returns the recorded rating, 0 meaning unanswered.
func (a *Answers) Rating(productID string) int {
	return a.ratings[productID]
}

// SetProductComment records or overwrites a product comment. Called on every
// keystroke, so it has to stay a plain idempotent assignment.
func (a *Answers) SetProductComment(productID, text string) {
	a.comments[productID] = text
}

func (a *Answers) Comment(productID string) (string, bool) {
	c, ok := a.comments[productID]
	return c, ok
}

// MarkSubmitted flags a step as durably POSTed. Step ids are question ids, or
// "product:<id>" for per-product confirmations.
func (a *Answers) MarkSubmitted(stepID string) {
	a.submitted[stepID] = true
}

func (a *Answers) Submitted(stepID string) bool {
	return a.submitted[stepID]
}

// Reset drops every answer and submission flag.
func (a *Answers) Reset() {
	a.scalars = map[string]any{}
	a.ratings = map[string]int{}
	a.comments = map[string]string{}
	a.submitted = map[string]bool{}
}

// DefaultComment maps a star rating to a canned comment text. Zero or
// out-of-band input yields the empty string, never a guessed value.
func DefaultComment(rating int) string {
	switch {
	case rating >= 5:
		return "Absolutely loved it! ⭐⭐⭐⭐⭐"
	case rating == 4:
		return "Pretty good overall."
	case rating == 3:
		return "It's okay, could be better."
	case rating == 2:
		return "Not very satisfied."
	case rating == 1:
		return "Really disappointed."
	}
	return ""
}
