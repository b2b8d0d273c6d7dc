package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/manfeltor/dadsproject/internal/service/models/product"
	"github.com/manfeltor/dadsproject/internal/service/services/catalogsvc"
)

type service interface {
	ListProducts(
		ctx context.Context,
		filter product.QueryProductsModel,
	) (*catalogsvc.ProductListing, error)
}

type queryProductsRequest struct {
	Page     int    `schema:"page,omitempty"`
	PageSize int    `schema:"page_size,omitempty"`
	Search   string `schema:"search,omitempty"`
	Rubro    string `schema:"rubro,omitempty"`
	Category string `schema:"category,omitempty"`
	Sort     string `schema:"sort,omitempty"`
}

// productInListResponse mirrors the storefront wire format: price is the
// discounted price, original_price the catalog price.
type productInListResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	OriginalPrice    float64 `json:"original_price"`
	Discount         float64 `json:"discount"`
	DiscountName     string  `json:"discount_name"`
	ShortDescription string  `json:"short_description"`
	LongDescription  string  `json:"long_description"`
	Image            string  `json:"image"`
}

type rubroInListResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type categoryInListResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	RubroID int64  `json:"rubro_id"`
}

type listProductsResponse struct {
	Results    []productInListResponse  `json:"results"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"total_pages"`
	Rubros     []rubroInListResponse    `json:"rubros"`
	Categories []categoryInListResponse `json:"categories"`
}

// ListProducts handles the catalog listing request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &queryProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	listing, err := service.ListProducts(r.Context(), product.QueryProductsModel{
		Page:         query.Page,
		PageSize:     query.PageSize,
		Search:       query.Search,
		RubroSlug:    query.Rubro,
		CategorySlug: query.Category,
		Sort:         query.Sort,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Error listing products", "error", err)

		return
	}

	resp := listProductsResponse{
		Results:    make([]productInListResponse, 0, len(listing.Products)),
		Page:       listing.Page,
		TotalPages: listing.TotalPages,
		Rubros:     make([]rubroInListResponse, 0, len(listing.Rubros)),
		Categories: make([]categoryInListResponse, 0, len(listing.Categories)),
	}

	for _, p := range listing.Products {
		resp.Results = append(resp.Results, productInListResponse{
			ID:               p.ID,
			Name:             p.Name,
			Price:            p.DiscountedPrice().InexactFloat64(),
			OriginalPrice:    p.Price.InexactFloat64(),
			Discount:         p.Discount.InexactFloat64(),
			DiscountName:     p.DiscountName,
			ShortDescription: p.ShortDescription,
			LongDescription:  p.LongDescription,
			Image:            p.Image,
		})
	}
	for _, ru := range listing.Rubros {
		resp.Rubros = append(resp.Rubros, rubroInListResponse{ID: ru.ID, Name: ru.Name, Slug: ru.Slug})
	}
	for _, c := range listing.Categories {
		resp.Categories = append(resp.Categories, categoryInListResponse{
			ID:      c.ID,
			Name:    c.Name,
			Slug:    c.Slug,
			RubroID: c.RubroID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
