package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/services/ordersvc"
	"github.com/manfeltor/dadsproject/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Checkout(ctx context.Context, actorID int64, payload ordersvc.CheckoutPayload) (*order.Order, error)
}

// itemInCheckoutResponse mirrors the storefront wire format for one line.
type itemInCheckoutResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// checkoutResponse is the order summary returned on success.
type checkoutResponse struct {
	Status   string                   `json:"status"`
	OrderID  int64                    `json:"order_id"`
	Subtotal float64                  `json:"subtotal"`
	Shipping float64                  `json:"shipping"`
	Total    float64                  `json:"total"`
	Items    []itemInCheckoutResponse `json:"items"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Checkout handles the order creation request.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	var payload ordersvc.CheckoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		slog.Error("Error decoding checkout payload", "error", err)

		return
	}

	var actorID int64
	if identity, ok := auth.FromContext(r.Context()); ok {
		actorID = identity.UserID
	}

	o, err := service.Checkout(r.Context(), actorID, payload)
	if err != nil {
		if errs.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			slog.Info("Checkout rejected", "error", err)

			return
		}

		writeError(w, http.StatusInternalServerError, "Internal error while creating order")
		slog.Error("Error creating order", "error", err)

		return
	}

	resp := checkoutResponse{
		Status:   "ok",
		OrderID:  o.ID,
		Subtotal: o.Subtotal.InexactFloat64(),
		Shipping: o.ShippingTotal.InexactFloat64(),
		Total:    o.Total.InexactFloat64(),
		Items:    make([]itemInCheckoutResponse, 0, len(o.OrderItems)),
	}
	for _, item := range o.OrderItems {
		resp.Items = append(resp.Items, itemInCheckoutResponse{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Qty:       item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			LineTotal: item.LineTotal.InexactFloat64(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending checkout response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Status: "error", Message: message})
}
