package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/services/catalogsvc"
	"github.com/manfeltor/dadsproject/internal/service/services/ordersvc"
	"github.com/manfeltor/dadsproject/internal/service/services/usersvc"
	"github.com/manfeltor/dadsproject/internal/tracing"
	httptransport "github.com/manfeltor/dadsproject/internal/transport/http"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	catalogSvc     *catalogsvc.CatalogService
	userSvc        *usersvc.UserService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	tracing        *tracing.Controller
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracingController := tracing.MustInit()
	postgresClient := postgres.MustNewClient()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, userSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		catalogSvc:     catalogSvc,
		userSvc:        userSvc,
		transport:      transport,
		postgresClient: postgresClient,
		tracing:        tracingController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.tracing.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
