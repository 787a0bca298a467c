package flow

import "github.com/inflate-app/feedback-flow/model"

// TotalSteps counts the sub-steps a customer walks through: one per scalar
// question, two per product (rating, comment). This matches exactly how
// Advance enumerates the sequence.
func TotalSteps(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		if q.Type == model.TypeProducts {
			total += 2 * len(q.Products)
		} else {
			total++
		}
	}
	return total
}

func (f *Flow) TotalSteps() int {
	return TotalSteps(f.questions)
}

// Progress returns the completion ratio in [0,1]: submitted scalar answers
// plus recorded product ratings and comments, over TotalSteps. It never
// decreases while the customer moves forward; only Restart drops it.
func (f *Flow) Progress() float64 {
	total := f.TotalSteps()
	if total == 0 {
		return 1
	}

	count := 0
	for _, q := range f.questions {
		if q.Type == model.TypeProducts {
			for _, p := range q.Products {
				if f.answers.Rating(p.ID) != 0 {
					count++
				}
				if _, ok := f.answers.Comment(p.ID); ok {
					count++
				}
			}
			continue
		}
		if f.answers.Submitted(q.ID) {
			count++
		}
	}
	return float64(count) / float64(total)
}
