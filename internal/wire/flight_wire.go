package wire

import (
	"forfly/internal/adaptor"
	"forfly/internal/data/repository"
	"forfly/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFlight(
	r chi.Router,
	flightHandler *adaptor.FlightHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The catalog is browsable without logging in; only booking needs auth.
	r.Get("/api/flights/origins", flightHandler.Origins)
	r.Get("/api/flights/destinations", flightHandler.Destinations)
	r.Get("/api/flights/search", flightHandler.Search)
}
