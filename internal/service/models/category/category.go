package category

// Category groups products under a rubro.
type Category struct {
	ID      int64  `json:"id"`
	RubroID int64  `json:"rubroId"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
}
