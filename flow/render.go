package flow

import (
	"github.com/inflate-app/feedback-flow/model"
	"github.com/pkg/errors"
)

// ErrUnsupportedQuestionType leaks through only when a question type outside
// the closed set survived schema validation. Callers render a visible
// placeholder for it instead of crashing or advancing.
var ErrUnsupportedQuestionType = errors.New("flow: unsupported question type")

// Widget names the input affordance class the rendering layer should mount.
type Widget string

const (
	WidgetScalePicker   Widget = "scale-picker"
	WidgetStarRating    Widget = "star-rating"
	WidgetFreeText      Widget = "free-text"
	WidgetChoiceButtons Widget = "choice-buttons"
	WidgetImageRadio    Widget = "image-radio"
)

// Input is the full dispatch contract for the current step: which widget,
// what to ask, what options or product to feed it, and the value recorded so
// far. The rendering layer itself stays outside this package.
type Input struct {
	Widget       Widget              `json:"widget"`
	Prompt       string              `json:"prompt"`
	Scale        int                 `json:"scale,omitempty"`
	LeftLabel    string              `json:"leftLabel,omitempty"`
	RightLabel   string              `json:"rightLabel,omitempty"`
	Placeholder  string              `json:"placeholder,omitempty"`
	Choices      []string            `json:"choices,omitempty"`
	RadioOptions []model.RadioOption `json:"radioOptions,omitempty"`
	Product      *model.Product      `json:"product,omitempty"`
	Value        any                 `json:"value,omitempty"`
	Sending      bool                `json:"sending"`
}

// InputFor maps a question and cursor position to the widget to present.
// Total over the closed question type set; anything else is
// ErrUnsupportedQuestionType.
func InputFor(q model.Question, cursor Cursor, answers *Answers, sending bool) (Input, error) {
	in := Input{Prompt: q.Prompt, Sending: sending}

	switch q.Type {
	case model.TypeNPS, model.TypeScale:
		in.Widget = WidgetScalePicker
		in.Scale = q.Scale
		in.LeftLabel = q.LeftLabel
		in.RightLabel = q.RightLabel
		in.Value, _ = answers.Scalar(q.ID)

	case model.TypeYesNo:
		in.Widget = WidgetChoiceButtons
		in.Choices = []string{"Yes", "No"}
		in.Value, _ = answers.Scalar(q.ID)

	case model.TypeMultiChoice:
		in.Widget = WidgetChoiceButtons
		in.Choices = q.Options
		in.Value, _ = answers.Scalar(q.ID)

	case model.TypeRadio:
		in.Widget = WidgetImageRadio
		in.RadioOptions = q.RadioOptions
		in.Value, _ = answers.Scalar(q.ID)

	case model.TypeTextarea:
		in.Widget = WidgetFreeText
		in.Placeholder = q.Placeholder
		in.Value, _ = answers.Scalar(q.ID)

	case model.TypeProducts:
		p := q.Products[cursor.Product]
		in.Product = &p
		if cursor.Phase == PhaseRating {
			in.Widget = WidgetStarRating
			in.Value = answers.Rating(p.ID)
		} else {
			in.Widget = WidgetFreeText
			in.Value, _ = answers.Comment(p.ID)
		}

	default:
		return Input{}, errors.Wrapf(ErrUnsupportedQuestionType, "%q", q.Type)
	}

	return in, nil
}

// Input dispatches for the question under the flow's own cursor.
func (f *Flow) Input() (Input, error) {
	q, ok := f.Current()
	if !ok {
		return Input{}, ErrDone
	}
	return InputFor(q, f.cursor, f.answers, f.sending)
}
