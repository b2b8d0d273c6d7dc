package getproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

type service interface {
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
}

// GetProduct handles the product detail request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Error getting product", "error", err, "id", id)

		return
	}
	if p == nil {
		http.Error(w, "product not found", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
