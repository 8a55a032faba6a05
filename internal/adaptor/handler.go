package adaptor

import (
	"forfly/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Flight  *FlightHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Flight:  NewFlightHandler(service.Flight, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
