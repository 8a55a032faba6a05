package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"forfly/internal/data/entity"

	"go.uber.org/zap"
)

type FlightRepository interface {
	// Search returns all catalog flights whose origin and destination match
	// the arguments exactly. No fuzzy matching.
	Search(origin, destination string) []entity.Flight
	FindByNumber(flightNumber string) *entity.Flight
	Origins() []string
	Destinations(origin string) []string
}

// flightRepository is the static catalog: loaded once at startup, read-only
// afterwards, so no locking is needed.
type flightRepository struct {
	flights []entity.Flight
	log     *zap.Logger
}

func NewFlightRepository(path string, log *zap.Logger) (FlightRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flight catalog %s: %w", path, err)
	}

	var flights []entity.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("parse flight catalog %s: %w", path, err)
	}

	log.Info("Flight catalog loaded",
		zap.String("path", path),
		zap.Int("flights", len(flights)),
	)

	return &flightRepository{flights: flights, log: log}, nil
}

func (r *flightRepository) Search(origin, destination string) []entity.Flight {
	var results []entity.Flight
	for _, f := range r.flights {
		if f.Origin == origin && f.Destination == destination {
			results = append(results, f)
		}
	}
	return results
}

func (r *flightRepository) FindByNumber(flightNumber string) *entity.Flight {
	for _, f := range r.flights {
		if f.FlightNumber == flightNumber {
			flight := f
			return &flight
		}
	}
	return nil
}

func (r *flightRepository) Origins() []string {
	return sortedUnique(r.flights, func(f entity.Flight) string { return f.Origin })
}

// Destinations lists where the given origin flies to; with an empty origin it
// lists every destination in the catalog.
func (r *flightRepository) Destinations(origin string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.flights {
		if origin != "" && f.Origin != origin {
			continue
		}
		if !seen[f.Destination] {
			seen[f.Destination] = true
			out = append(out, f.Destination)
		}
	}
	sort.Strings(out)
	return out
}

func sortedUnique(flights []entity.Flight, key func(entity.Flight) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range flights {
		k := key(f)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
