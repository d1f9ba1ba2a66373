package pricing

import (
	"staywise/models"
	"staywise/utils"
)

// Engine computes stay prices from the room's nightly rate.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Quote returns basePrice * nights for the stay. The range is deliberately not
// validated: a zero-length stay prices at 0 and an inverted one negative.
// Callers that need a sane range enforce it themselves.
func (e *Engine) Quote(room *models.Room, startDate, endDate string) (int64, error) {
	nights, err := utils.NightsBetween(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return room.BasePrice * nights, nil
}
