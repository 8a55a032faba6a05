package wire

import (
	"forfly/internal/adaptor"
	"forfly/internal/data/repository"
	"forfly/pkg/middleware"
	"forfly/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// The whole purchase wizard is tied to the logged-in user.
	r.Route("/api/booking", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", bookingHandler.GetSession)
		r.Post("/flight", bookingHandler.SelectFlight)
		r.Post("/fare", bookingHandler.ChooseFare)
		r.Post("/passenger", bookingHandler.EnterPassenger)
		r.Post("/payment", bookingHandler.SubmitPayment)
		r.Post("/contact", bookingHandler.EnterContact)
		r.Post("/confirm", bookingHandler.Confirm)
		r.Get("/notification", bookingHandler.NotificationStatus)
	})

	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/user/bookings", bookingHandler.UserBookings)
}
