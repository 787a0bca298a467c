package model

import "encoding/json"

type QuestionType string

const (
	TypeNPS         QuestionType = "nps"
	TypeScale       QuestionType = "scale"
	TypeYesNo       QuestionType = "yes-no"
	TypeRadio       QuestionType = "radio"
	TypeMultiChoice QuestionType = "multi-choice"
	TypeTextarea    QuestionType = "textarea"
	TypeProducts    QuestionType = "products"
)

// Question is a single survey step definition. The Type discriminator decides
// which of the variant fields are meaningful; everything else stays zero.
type Question struct {
	ID     string       `json:"id"`
	Type   QuestionType `json:"type"`
	Prompt string       `json:"prompt"`

	// nps, scale
	Scale      int    `json:"scale,omitempty"`
	LeftLabel  string `json:"leftLabel,omitempty"`
	RightLabel string `json:"rightLabel,omitempty"`

	// multi-choice
	Options []string `json:"-"`

	// radio
	RadioOptions []RadioOption `json:"-"`

	// textarea
	Placeholder string `json:"placeholder,omitempty"`

	// products
	Products []Product `json:"products,omitempty"`
}

type RadioOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Branding is cosmetic configuration passed through untouched by the flow.
type Branding struct {
	Logo       string `json:"logo"`
	BrandColor string `json:"brandColor"`
	Background string `json:"background,omitempty"`
	Font       string `json:"font"`
}

// Payload is the question endpoint response shape. The endpoint may also
// return a bare question array, see ParsePayload.
type Payload struct {
	Questions []Question `json:"questions"`
	Products  []Product  `json:"products,omitempty"`
	Branding  []Branding `json:"branding,omitempty"`
}

// Brand returns the first branding entry, or nil when there is none.
func (p Payload) Brand() *Branding {
	if len(p.Branding) == 0 {
		return nil
	}
	return &p.Branding[0]
}

// questionWire resolves the "options" key, which holds plain strings for
// multi-choice and id/label/image objects for radio.
type questionWire struct {
	ID          string          `json:"id"`
	Type        QuestionType    `json:"type"`
	Prompt      string          `json:"prompt"`
	Scale       int             `json:"scale,omitempty"`
	LeftLabel   string          `json:"leftLabel,omitempty"`
	RightLabel  string          `json:"rightLabel,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	Products    []Product       `json:"products,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var wire questionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	q.ID = wire.ID
	q.Type = wire.Type
	q.Prompt = wire.Prompt
	q.Scale = wire.Scale
	q.LeftLabel = wire.LeftLabel
	q.RightLabel = wire.RightLabel
	q.Placeholder = wire.Placeholder
	q.Products = wire.Products

	if len(wire.Options) > 0 {
		switch wire.Type {
		case TypeMultiChoice:
			if err := json.Unmarshal(wire.Options, &q.Options); err != nil {
				return err
			}
		case TypeRadio:
			if err := json.Unmarshal(wire.Options, &q.RadioOptions); err != nil {
				return err
			}
		}
	}
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	wire := questionWire{
		ID:          q.ID,
		Type:        q.Type,
		Prompt:      q.Prompt,
		Scale:       q.Scale,
		LeftLabel:   q.LeftLabel,
		RightLabel:  q.RightLabel,
		Placeholder: q.Placeholder,
		Products:    q.Products,
	}

	var err error
	switch q.Type {
	case TypeMultiChoice:
		if q.Options != nil {
			wire.Options, err = json.Marshal(q.Options)
		}
	case TypeRadio:
		if q.RadioOptions != nil {
			wire.Options, err = json.Marshal(q.RadioOptions)
		}
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(wire)
}
