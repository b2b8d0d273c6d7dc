package rubro

// Rubro is a top-level business line grouping categories, e.g. "Food" or
// "Hardware".
type Rubro struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
