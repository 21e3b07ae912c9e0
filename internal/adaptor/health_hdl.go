package adaptor

import (
	"context"
	"net/http"
	"time"

	"customer-reviews/pkg/utils"

	"go.uber.org/zap"
)

// Pinger is satisfied by *repository.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
	log   *zap.Logger
}

func NewHealthHandler(store Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Database ping failed", zap.Error(err))
		utils.ResponseUnavailable(w, "Database unavailable")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
