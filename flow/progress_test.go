package flow

import (
	"context"
	"testing"

	"github.com/inflate-app/feedback-flow/model"
)

func TestTotalStepsFormula(t *testing.T) {
	questions := []model.Question{
		{ID: "nps", Type: model.TypeNPS, Scale: 10},
		productsQuestion(2),
		{ID: "delivery", Type: model.TypeTextarea},
		productsQuestion(0),
	}

	// 2 scalar steps + 2 products × 2 sub-steps
	if got := TotalSteps(questions); got != 6 {
		t.Fatalf("TotalSteps = %d, want 6", got)
	}
}

func TestProgressMonotonicOverFullWalk(t *testing.T) {
	f := New([]model.Question{
		{ID: "nps", Type: model.TypeNPS, Prompt: "Recommend?", Scale: 10},
		productsQuestion(2),
		{ID: "delivery", Type: model.TypeTextarea, Prompt: "Delivery?"},
	}, &recordingSubmitter{})
	ctx := context.Background()

	last := f.Progress()
	check := func(op string) {
		t.Helper()
		got := f.Progress()
		if got < last {
			t.Fatalf("progress decreased after %s: %v -> %v", op, last, got)
		}
		if got < 0 || got > 1 {
			t.Fatalf("progress out of range after %s: %v", op, got)
		}
		last = got
	}

	if last != 0 {
		t.Fatalf("initial progress = %v", last)
	}

	steps := []struct {
		name string
		op   func() error
	}{
		{"AnswerScalar", func() error { return f.AnswerScalar(ctx, 9) }},
		{"RateProduct p1", func() error { return f.RateProduct(ctx, 5) }},
		{"EditComment p1", func() error { return f.EditComment("nice") }},
		{"ConfirmComment p1", func() error { return f.ConfirmComment(ctx) }},
		{"RateProduct p2", func() error { return f.RateProduct(ctx, 3) }},
		{"ConfirmComment p2", func() error { return f.ConfirmComment(ctx) }},
		{"AnswerScalar delivery", func() error { return f.AnswerScalar(ctx, "Great!") }},
	}
	for _, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		check(s.name)
	}

	if !f.Done() {
		t.Fatal("flow should be done")
	}
	if last != 1 {
		t.Fatalf("final progress = %v, want 1", last)
	}
}

func TestProgressCountsRatingsAndCommentsIndependently(t *testing.T) {
	f := New([]model.Question{productsQuestion(2)}, &recordingSubmitter{})

	// one rating auto-fills one comment: 2 of 4 steps
	f.Answers().SetProductRating("p1", 4)

	if got := f.Progress(); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}
}

func TestProgressEmptyModel(t *testing.T) {
	f := New(nil, &recordingSubmitter{})

	if !f.Done() {
		t.Fatal("empty model should start done")
	}
	if got := f.Progress(); got != 1 {
		t.Fatalf("progress = %v, want 1", got)
	}
}
