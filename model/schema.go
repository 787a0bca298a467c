package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaError rejects a question or branding payload, naming the offending
// question and field. A malformed payload fails as a whole: no partial flow
// is ever built from it.
type SchemaError struct {
	QuestionID string
	Field      string
	Reason     string
}

func (e *SchemaError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("schema: question %q: field %q: %s", e.QuestionID, e.Field, e.Reason)
}

// ParseQuestions validates a bare JSON array of question definitions.
func ParseQuestions(data []byte) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// ParsePayload accepts the question endpoint's response: either a bare array
// of questions, or an object {questions, products, branding}.
func ParsePayload(data []byte) (*Payload, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		questions, err := ParseQuestions(data)
		if err != nil {
			return nil, err
		}
		return &Payload{Questions: questions}, nil
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if err := ValidateQuestions(payload.Questions); err != nil {
		return nil, err
	}
	for i := range payload.Branding {
		if err := validateBranding(payload.Branding[i]); err != nil {
			return nil, err
		}
	}
	return &payload, nil
}

// ValidateQuestions checks the whole sequence against the closed question
// type set: recognized discriminators, unique ids, well-formed variant fields.
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return &SchemaError{Field: "id", Reason: "missing"}
		}
		if seen[q.ID] {
			return &SchemaError{QuestionID: q.ID, Field: "id", Reason: "duplicate"}
		}
		seen[q.ID] = true

		if err := validateQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(q Question) error {
	switch q.Type {
	case TypeNPS, TypeScale:
		if q.Scale < 2 {
			return &SchemaError{QuestionID: q.ID, Field: "scale", Reason: "must be at least 2"}
		}
	case TypeRadio:
		if len(q.RadioOptions) == 0 {
			return &SchemaError{QuestionID: q.ID, Field: "options", Reason: "missing"}
		}
		for _, opt := range q.RadioOptions {
			if opt.ID == "" {
				return &SchemaError{QuestionID: q.ID, Field: "options", Reason: "option id missing"}
			}
		}
	case TypeMultiChoice:
		if len(q.Options) == 0 {
			return &SchemaError{QuestionID: q.ID, Field: "options", Reason: "missing"}
		}
	case TypeProducts:
		seen := make(map[string]bool, len(q.Products))
		for _, p := range q.Products {
			if p.ID == "" {
				return &SchemaError{QuestionID: q.ID, Field: "products", Reason: "product id missing"}
			}
			if seen[p.ID] {
				return &SchemaError{QuestionID: q.ID, Field: "products", Reason: fmt.Sprintf("duplicate product id %q", p.ID)}
			}
			seen[p.ID] = true
		}
	case TypeTextarea, TypeYesNo:
		// no variant fields to check
	default:
		return &SchemaError{QuestionID: q.ID, Field: "type", Reason: fmt.Sprintf("unrecognized question type %q", q.Type)}
	}
	return nil
}

func validateBranding(b Branding) error {
	if b.Logo == "" {
		return &SchemaError{QuestionID: "branding", Field: "logo", Reason: "missing"}
	}
	if b.BrandColor == "" {
		return &SchemaError{QuestionID: "branding", Field: "brandColor", Reason: "missing"}
	}
	if b.Font == "" {
		return &SchemaError{QuestionID: "branding", Field: "font", Reason: "missing"}
	}
	return nil
}
