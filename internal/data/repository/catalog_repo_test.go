package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCatalog = `[
    {
        "flight_number": "FF100",
        "origin": "New York",
        "destination": "London",
        "departure_time": "08:30",
        "arrival_time": "20:45",
        "price": 500,
        "aircraft_model": "Boeing 787"
    },
    {
        "flight_number": "FF101",
        "origin": "New York",
        "destination": "London",
        "departure_time": "14:00",
        "arrival_time": "02:15",
        "price": 450,
        "aircraft_model": "Airbus A350"
    },
    {
        "flight_number": "FF300",
        "origin": "New York",
        "destination": "Paris",
        "departure_time": "10:00",
        "arrival_time": "23:10",
        "price": 520,
        "aircraft_model": "Boeing 777"
    },
    {
        "flight_number": "FF400",
        "origin": "Tokyo",
        "destination": "Sydney",
        "departure_time": "09:15",
        "arrival_time": "19:30",
        "price": 700,
        "aircraft_model": "Boeing 787"
    }
]`

func newTestCatalog(t *testing.T) FlightRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flights.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0644))

	repo, err := NewFlightRepository(path, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func TestCatalogSearchExactMatch(t *testing.T) {
	repo := newTestCatalog(t)

	flights := repo.Search("New York", "London")
	require.Len(t, flights, 2)
	assert.Equal(t, "FF100", flights[0].FlightNumber)
	assert.Equal(t, "FF101", flights[1].FlightNumber)
}

func TestCatalogSearchIsCaseSensitive(t *testing.T) {
	repo := newTestCatalog(t)

	assert.Empty(t, repo.Search("new york", "london"))
	assert.Empty(t, repo.Search("New York", "Lon"))
}

func TestCatalogSearchUnknownRoute(t *testing.T) {
	repo := newTestCatalog(t)
	assert.Empty(t, repo.Search("London", "Tokyo"))
}

func TestCatalogFindByNumber(t *testing.T) {
	repo := newTestCatalog(t)

	flight := repo.FindByNumber("FF300")
	require.NotNil(t, flight)
	assert.Equal(t, "Paris", flight.Destination)
	assert.Equal(t, 520.0, flight.Price)

	assert.Nil(t, repo.FindByNumber("FF999"))
}

func TestCatalogOriginsAndDestinations(t *testing.T) {
	repo := newTestCatalog(t)

	assert.Equal(t, []string{"New York", "Tokyo"}, repo.Origins())
	assert.Equal(t, []string{"London", "Paris"}, repo.Destinations("New York"))
	assert.Equal(t, []string{"London", "Paris", "Sydney"}, repo.Destinations(""))
	assert.Empty(t, repo.Destinations("London"))
}

func TestCatalogMissingFile(t *testing.T) {
	_, err := NewFlightRepository(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	assert.Error(t, err)
}

func TestCatalogUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	_, err := NewFlightRepository(path, zap.NewNop())
	assert.Error(t, err)
}
