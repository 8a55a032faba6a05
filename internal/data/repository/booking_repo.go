package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"

	"go.uber.org/zap"
)

type BookingRepository interface {
	// Save appends the booking to the user's list and rewrites the whole
	// persisted index. All saves in the process are serialized by one lock.
	Save(ctx context.Context, username string, booking entity.Booking) error
	// FindByUsername returns the user's bookings in insertion order.
	FindByUsername(ctx context.Context, username string) ([]entity.Booking, error)
}

// bookingRepository persists the booking index as a single JSON document
// mapping username to an ordered list of bookings. The store-wide mutex is
// the whole concurrency story: booking volume is low, and lost or interleaved
// writes matter more than throughput.
type bookingRepository struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewBookingRepository(path string, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		path: path,
		log:  log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Save(ctx context.Context, username string, booking entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, err := r.readIndex()
	if err != nil {
		return err
	}

	index[username] = append(index[username], booking)

	data, err := json.MarshalIndent(index, "", "    ")
	if err != nil {
		return fmt.Errorf("encode booking index: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create booking store directory: %w", err)
		}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write booking store %s: %w", r.path, err)
	}

	r.log.Info("Booking saved",
		zap.String("username", username),
		zap.String("flight_number", booking.FlightNumber),
		zap.Float64("fare", booking.Fare),
	)

	return nil
}

func (r *bookingRepository) FindByUsername(ctx context.Context, username string) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}
	return index[username], nil
}

// readIndex loads the persisted index. An absent file means an empty store;
// an unparseable file is surfaced as ErrStoreCorrupt and is never overwritten,
// so a single corrupt read cannot destroy other users' bookings.
func (r *bookingRepository) readIndex() (map[string][]entity.Booking, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return make(map[string][]entity.Booking), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read booking store %s: %w", r.path, err)
	}

	index := make(map[string][]entity.Booking)
	if err := json.Unmarshal(data, &index); err != nil {
		r.log.Error("Booking store is unparseable",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStoreCorrupt, r.path)
	}
	return index, nil
}
