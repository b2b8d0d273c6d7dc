package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/models/user"
	"github.com/manfeltor/dadsproject/internal/transport/http/middleware/auth"
)

type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids     []int64 `schema:"ids,omitempty"`
	UserIds []int64 `schema:"userIds,omitempty"`
	Limit   int     `schema:"limit,omitempty"`
	Offset  int     `schema:"offset,omitempty"`
}

// ListOrders returns the caller's orders. Managers may query any
// customer's orders; everyone else is pinned to their own.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)

		return
	}

	filter := order.QueryOrdersModel{
		Ids:     query.Ids,
		UserIds: query.UserIds,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}
	if identity.Role != user.RoleManager {
		filter.UserIds = []int64{identity.UserID}
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Error getting orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
