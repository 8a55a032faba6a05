package repository

import (
	"forfly/pkg/database"
	"forfly/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Flight  FlightRepository
	Booking BookingRepository
}

// NewRepository wires the credential repos onto the database and the catalog
// and booking store onto their files. The flight catalog is loaded here, once.
func NewRepository(db database.PgxIface, config *utils.Config, log *zap.Logger) (*Repository, error) {
	flights, err := NewFlightRepository(config.Catalog.FlightsFile, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Flight:  flights,
		Booking: NewBookingRepository(config.Store.BookingsFile, log),
	}, nil
}
