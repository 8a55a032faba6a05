package adaptor

import (
	"errors"
	"net/http"

	"forfly/internal/apperrors"
	"forfly/internal/dto/response"
	"forfly/internal/usecase"
	"forfly/pkg/utils"

	"go.uber.org/zap"
)

type FlightHandler struct {
	service usecase.FlightService
	log     *zap.Logger
}

func NewFlightHandler(service usecase.FlightService, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		service: service,
		log:     log,
	}
}

// Origins handles GET /api/flights/origins
func (h *FlightHandler) Origins(w http.ResponseWriter, r *http.Request) {
	origins, err := h.service.Origins(r.Context())
	if err != nil {
		h.log.Error("Failed to list origins", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Origins retrieved", response.RouteOptionsResponse{Origins: origins})
}

// Destinations handles GET /api/flights/destinations?origin=...
func (h *FlightHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")

	destinations, err := h.service.Destinations(r.Context(), origin)
	if err != nil {
		h.log.Error("Failed to list destinations", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Destinations retrieved", response.RouteOptionsResponse{Destinations: destinations})
}

// Search handles GET /api/flights/search?origin=...&destination=...
func (h *FlightHandler) Search(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")

	if origin == "" || destination == "" {
		utils.ResponseBadRequest(w, "Both origin and destination are required", nil)
		return
	}

	flights, err := h.service.Search(r.Context(), origin, destination)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoFlightsFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("Failed to search flights", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Flights retrieved", flights)
}
