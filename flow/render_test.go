package flow

import (
	"errors"
	"testing"

	"github.com/inflate-app/feedback-flow/model"
)

func TestInputForDispatch(t *testing.T) {
	answers := NewAnswers()

	cases := []struct {
		name     string
		question model.Question
		cursor   Cursor
		want     Widget
	}{
		{"nps", model.Question{ID: "nps", Type: model.TypeNPS, Scale: 10}, Cursor{}, WidgetScalePicker},
		{"scale", model.Question{ID: "sat", Type: model.TypeScale, Scale: 5}, Cursor{}, WidgetScalePicker},
		{"yes-no", model.Question{ID: "again", Type: model.TypeYesNo}, Cursor{}, WidgetChoiceButtons},
		{"multi-choice", model.Question{ID: "src", Type: model.TypeMultiChoice, Options: []string{"A"}}, Cursor{}, WidgetChoiceButtons},
		{"radio", model.Question{ID: "pack", Type: model.TypeRadio, RadioOptions: []model.RadioOption{{ID: "a", Label: "A"}}}, Cursor{}, WidgetImageRadio},
		{"textarea", model.Question{ID: "txt", Type: model.TypeTextarea}, Cursor{}, WidgetFreeText},
		{"product rating", productsQuestion(2), Cursor{Phase: PhaseRating}, WidgetStarRating},
		{"product comment", productsQuestion(2), Cursor{Product: 1, Phase: PhaseComment}, WidgetFreeText},
	}

	for _, c := range cases {
		in, err := InputFor(c.question, c.cursor, answers, false)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if in.Widget != c.want {
			t.Errorf("%s: widget = %q, want %q", c.name, in.Widget, c.want)
		}
	}
}

func TestInputForProductStep(t *testing.T) {
	answers := NewAnswers()
	answers.SetProductRating("p2", 4)

	in, err := InputFor(productsQuestion(2), Cursor{Product: 1, Phase: PhaseRating}, answers, false)
	if err != nil {
		t.Fatal(err)
	}
	if in.Product == nil || in.Product.ID != "p2" {
		t.Fatalf("product = %+v, want p2", in.Product)
	}
	if in.Value != 4 {
		t.Fatalf("value = %v, want 4", in.Value)
	}
}

func TestInputForYesNoChoices(t *testing.T) {
	in, err := InputFor(model.Question{ID: "again", Type: model.TypeYesNo}, Cursor{}, NewAnswers(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Choices) != 2 || in.Choices[0] != "Yes" || in.Choices[1] != "No" {
		t.Fatalf("choices = %v", in.Choices)
	}
}

func TestInputForUnsupportedType(t *testing.T) {
	_, err := InputFor(model.Question{ID: "x", Type: "matrix"}, Cursor{}, NewAnswers(), false)
	if !errors.Is(err, ErrUnsupportedQuestionType) {
		t.Fatalf("got %v, want ErrUnsupportedQuestionType", err)
	}
}

func TestFlowInputAfterDone(t *testing.T) {
	f := New(nil, &recordingSubmitter{})

	_, err := f.Input()
	if !errors.Is(err, ErrDone) {
		t.Fatalf("got %v, want ErrDone", err)
	}
}
