package model

// MockBranding and MockQuestions back the development mode, where no order id
// and no question endpoint exist yet.
var MockBranding = Branding{
	Logo:       "https://placehold.co/100x40/000000/FFFFFF?text=Logo",
	BrandColor: "#000000",
	Font:       "Inter, sans-serif",
}

var MockQuestions = []Question{
	{
		ID:         "nps",
		Type:       TypeNPS,
		Prompt:     "How likely are you to recommend us to a friend?",
		Scale:      10,
		LeftLabel:  "1 – Not likely",
		RightLabel: "10 – Very likely",
	},
	{
		ID:     "products",
		Type:   TypeProducts,
		Prompt: "Please rate the following products:",
		Products: []Product{
			{ID: "p1", Name: "Product 1", Image: "https://placehold.co/120x120/E0E0E0/000000?text=P1"},
			{ID: "p2", Name: "Product 2", Image: "https://placehold.co/120x120/E0E0E0/000000?text=P2"},
		},
	},
	{
		ID:         "satisfaction",
		Type:       TypeScale,
		Prompt:     "How satisfied are you with the product quality?",
		Scale:      5,
		LeftLabel:  "Very unsatisfied",
		RightLabel: "Very satisfied",
	},
	{
		ID:     "packaging",
		Type:   TypeRadio,
		Prompt: "Which packaging design do you prefer?",
		RadioOptions: []RadioOption{
			{ID: "a", Label: "Design A", Image: "https://placehold.co/150x150/ff0000/FFFFFF?text=A"},
			{ID: "b", Label: "Design B", Image: "https://placehold.co/150x150/0000FF/FFFFFF?text=B"},
		},
	},
	{
		ID:          "delivery",
		Type:        TypeTextarea,
		Prompt:      "What do you think about our delivery method?",
		Placeholder: "Your thoughts…",
	},
	{
		ID:      "source",
		Type:    TypeMultiChoice,
		Prompt:  "How did you hear about our product?",
		Options: []string{"Instagram", "Publicity", "Word of mouth", "Google"},
	},
	{
		ID:     "repeat",
		Type:   TypeYesNo,
		Prompt: "Would you order from us again?",
	},
}

// MockPayload mirrors what the question endpoint would return for a real order.
func MockPayload() *Payload {
	return &Payload{
		Questions: MockQuestions,
		Branding:  []Branding{MockBranding},
	}
}
