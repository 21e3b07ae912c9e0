package wire

import (
	"customer-reviews/internal/adaptor"
	"customer-reviews/internal/data/repository"
	"customer-reviews/internal/usecase"
	"customer-reviews/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router on top of repo.
func Wiring(repo *repository.Repository, logger *zap.Logger) *App {
	service := usecase.NewService(repo, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, adaptor.NewHealthHandler(repo, logger), logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, health *adaptor.HealthHandler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireCustomer(r, handler.Customer)
	wireItem(r, handler.Item)
	wireReview(r, handler.Review)

	// GET /health - store reachability
	r.Get("/health", health.Health)

	return r
}
