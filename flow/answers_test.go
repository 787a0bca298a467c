package flow

import "testing"

func TestDefaultCommentBands(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{5, "Absolutely loved it! ⭐⭐⭐⭐⭐"},
		{6, "Absolutely loved it! ⭐⭐⭐⭐⭐"},
		{4, "Pretty good overall."},
		{3, "It's okay, could be better."},
		{2, "Not very satisfied."},
		{1, "Really disappointed."},
		{0, ""},
		{-1, ""},
	}
	for _, c := range cases {
		if got := DefaultComment(c.rating); got != c.want {
			t.Errorf("DefaultComment(%d) = %q, want %q", c.rating, got, c.want)
		}
	}
}

func TestSetProductRatingKeepsExistingComment(t *testing.T) {
	a := NewAnswers()

	a.SetProductComment("p1", "my own words")
	a.SetProductRating("p1", 5)

	if got, _ := a.Comment("p1"); got != "my own words" {
		t.Fatalf("comment = %q, rating must not clobber it", got)
	}
}

func TestSetProductRatingFillsDefaultComment(t *testing.T) {
	a := NewAnswers()

	a.SetProductRating("p1", 2)

	if got, _ := a.Comment("p1"); got != DefaultComment(2) {
		t.Fatalf("comment = %q, want rating-2 default", got)
	}

	// a later rating does not replace the comment that already exists
	a.SetProductRating("p1", 5)
	if got, _ := a.Comment("p1"); got != DefaultComment(2) {
		t.Fatalf("comment = %q, want the original default", got)
	}
}

func TestAnswersIndependentIDs(t *testing.T) {
	a := NewAnswers()

	a.SetScalar("nps", 9)
	a.SetScalar("delivery", "fine")
	a.SetProductRating("p1", 4)
	a.SetScalar("nps", 10)

	if v, _ := a.Scalar("delivery"); v != "fine" {
		t.Fatalf("unrelated answer dropped: %v", v)
	}
	if got := a.Rating("p1"); got != 4 {
		t.Fatalf("unrelated rating dropped: %d", got)
	}
	if v, _ := a.Scalar("nps"); v != 10 {
		t.Fatalf("overwrite lost: %v", v)
	}
}

func TestMarkSubmitted(t *testing.T) {
	a := NewAnswers()

	if a.Submitted("nps") {
		t.Fatal("fresh store should have no submissions")
	}
	a.MarkSubmitted("nps")
	a.MarkSubmitted("product:p1")
	if !a.Submitted("nps") || !a.Submitted("product:p1") {
		t.Fatal("marks lost")
	}

	a.Reset()
	if a.Submitted("nps") {
		t.Fatal("reset should clear submission flags")
	}
}
