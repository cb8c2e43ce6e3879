package models

// Mantra is a chantable text. Built-in mantras are seeded at first run
// and are not user-deletable; custom mantras carry a generated id.
type Mantra struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsCustom bool   `json:"is_custom"`
}

// DefaultMantras is the seed list applied on init and after a full reset.
// Insertion order is display order.
func DefaultMantras() []Mantra {
	return []Mantra{
		{ID: "1", Text: "राधा"},
		{ID: "2", Text: "राम"},
		{ID: "3", Text: "महादेव"},
		{ID: "4", Text: "ॐ नमः शिवाय"},
		{ID: "5", Text: "ॐ नमो भगवते वासुदेवाय"},
		{ID: "6", Text: "गोविंदाय नमः"},
		{ID: "7", Text: "ॐ गम गणपतये नमः"},
		{ID: "8", Text: "हरे कृष्ण हरे कृष्ण कृष्ण कृष्ण हरे हरे हरे राम हरे राम राम राम हरे हरे"},
	}
}
