// Package notify delivers booking confirmations off the request path. A
// confirmation is dispatched after the booking is persisted; delivery failure
// is surfaced to the caller but never rolls the booking back.
package notify

import (
	"context"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"

	"go.uber.org/zap"
)

// Delivery is the completion handle for one dispatched confirmation. Done is
// closed when the attempt finishes, success or failure; Err is meaningful
// only after that. There is no cancellation: once dispatched, the attempt
// runs to completion.
type Delivery struct {
	done chan struct{}
	err  error
}

func (d *Delivery) Done() <-chan struct{} { return d.done }

func (d *Delivery) Err() error { return d.err }

// Finished reports whether the attempt has completed, without blocking.
func (d *Delivery) Finished() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

type Dispatcher struct {
	mailer Mailer
	log    *zap.Logger
}

func NewDispatcher(mailer Mailer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		log:    log.With(zap.String("component", "notify")),
	}
}

// Dispatch sends the confirmation on a background goroutine and returns
// immediately. onDone, if non-nil, runs on that goroutine after the attempt
// completes, before Done is closed.
func (d *Dispatcher) Dispatch(booking entity.Booking, onDone func(error)) *Delivery {
	delivery := &Delivery{done: make(chan struct{})}

	go func() {
		defer close(delivery.done)

		err := d.mailer.Send(context.Background(), booking)
		if err != nil {
			delivery.err = &apperrors.NotificationError{Err: err}
			d.log.Error("Confirmation notification failed",
				zap.Error(err),
				zap.String("username", booking.Username),
				zap.String("flight_number", booking.FlightNumber),
			)
		} else {
			d.log.Info("Confirmation notification sent",
				zap.String("username", booking.Username),
				zap.String("email", booking.Email),
			)
		}

		if onDone != nil {
			onDone(delivery.err)
		}
	}()

	return delivery
}
