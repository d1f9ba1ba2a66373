package availability

import (
	"context"

	bookingRepo "staywise/database/repository/booking"
	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/pricing"
	"staywise/utils"
)

// Resolver answers availability searches over committed bookings. Open
// checkout sessions are invisible to it; a room stays "available" until its
// payment settles.
type Resolver struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
	Pricing  *pricing.Engine
}

// Search returns the rooms that hold at least minOccupancy guests and have no
// booking overlapping [startDate, endDate), each with its quoted price for the
// stay. An empty result is not an error.
func (r *Resolver) Search(ctx context.Context, startDate, endDate string, minOccupancy int) ([]models.RoomQuote, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "%v", err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "%v", err)
	}
	if !start.Before(end) {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "startDate must be before endDate")
	}
	if minOccupancy < 0 {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "minOccupancy must not be negative")
	}

	booked, err := r.Bookings.RoomNrsBookedBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rooms, err := r.Rooms.FindByMinOccupancy(ctx, minOccupancy, booked)
	if err != nil {
		return nil, err
	}

	quotes := make([]models.RoomQuote, 0, len(rooms))
	for _, room := range rooms {
		price, err := r.Pricing.Quote(&room, startDate, endDate)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, models.RoomQuote{Room: room, Price: price})
	}
	return quotes, nil
}
