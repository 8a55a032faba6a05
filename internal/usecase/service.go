package usecase

import (
	"forfly/internal/data/repository"
	"forfly/internal/notify"
	"forfly/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Flight  FlightService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, dispatcher *notify.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Flight:  NewFlightService(repo.Flight, log),
		Booking: NewBookingService(repo, dispatcher, log),
	}
}
