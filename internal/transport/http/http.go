package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/manfeltor/dadsproject/internal/service/services/catalogsvc"
	"github.com/manfeltor/dadsproject/internal/service/services/ordersvc"
	"github.com/manfeltor/dadsproject/internal/service/services/usersvc"
	"github.com/manfeltor/dadsproject/internal/transport/http/checkout"
	getproduct "github.com/manfeltor/dadsproject/internal/transport/http/get_product"
	listorders "github.com/manfeltor/dadsproject/internal/transport/http/list_orders"
	listproducts "github.com/manfeltor/dadsproject/internal/transport/http/list_products"
	"github.com/manfeltor/dadsproject/internal/transport/http/login"
	authmw "github.com/manfeltor/dadsproject/internal/transport/http/middleware/auth"
	"github.com/manfeltor/dadsproject/internal/transport/http/register"
	"github.com/manfeltor/dadsproject/pkg/http/middleware/trace"
	"github.com/manfeltor/dadsproject/pkg/logger"
)

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   *ordersvc.OrderService
	catalogSvc *catalogsvc.CatalogService
	userSvc    *usersvc.UserService
}

func NewHTTPTransport(
	orderSvc *ordersvc.OrderService,
	catalogSvc *catalogsvc.CatalogService,
	userSvc *usersvc.UserService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		catalogSvc: catalogSvc,
		userSvc:    userSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	requireAuth := authmw.RequireAuth(h.userSvc)

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Post("/login", h.login)
		r.Post("/register", h.register)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/checkout", h.checkout)
			r.Get("/orders", h.listOrders)
		})
	})
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	checkout.Checkout(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	getproduct.GetProduct(w, r, h.catalogSvc)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	login.Login(w, r, h.userSvc)
}

func (h *HTTPTransport) register(w http.ResponseWriter, r *http.Request) {
	register.Register(w, r, h.userSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
