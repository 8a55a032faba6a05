// Package pricing computes ticket prices from the flight's base fare and the
// fixed cabin-class and ticket-type multiplier tables.
package pricing

import (
	"fmt"
	"math"

	"forfly/internal/data/entity"
)

var classMultipliers = map[entity.CabinClass]float64{
	entity.ClassFirst:          3.5,
	entity.ClassBusiness:       2.5,
	entity.ClassPremiumEconomy: 1.75,
	entity.ClassEconomy:        1.0,
}

var ticketTypeMultipliers = map[entity.TicketType]float64{
	entity.TicketChild: 0.5,
	entity.TicketAdult: 1.0,
}

// Final returns baseFare x classMultiplier x ticketTypeMultiplier, unrounded.
// Rounding happens only at display and persistence time, via Round2.
func Final(baseFare float64, class entity.CabinClass, ticketType entity.TicketType) (float64, error) {
	cm, ok := classMultipliers[class]
	if !ok {
		return 0, fmt.Errorf("unknown cabin class %q", class)
	}
	tm, ok := ticketTypeMultipliers[ticketType]
	if !ok {
		return 0, fmt.Errorf("unknown ticket type %q", ticketType)
	}
	return baseFare * cm * tm, nil
}

// Round2 rounds an amount to currency precision (2 decimal places).
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
