package product

// Sort orders supported by the catalog listing.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
)

// QueryProductsModel represents filter parameters for the catalog listing.
type QueryProductsModel struct {
	Ids          []int64 `json:"ids,omitempty"`
	Search       string  `json:"search,omitempty"`
	RubroSlug    string  `json:"rubro,omitempty"`
	CategorySlug string  `json:"category,omitempty"`
	Sort         string  `json:"sort,omitempty"`
	Page         int     `json:"page,omitempty"`
	PageSize     int     `json:"pageSize,omitempty"`
}
