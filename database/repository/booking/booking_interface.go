package bookingRepo

import (
	"context"
	"errors"

	"staywise/models"
)

var (
	// ErrNotFound is returned when no booking matches the composite key.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicateEvent marks a payment event that was already settled.
	ErrDuplicateEvent = errors.New("payment event already processed")
	// ErrDuplicateBooking marks an insert that collided on (roomNr, startDate).
	ErrDuplicateBooking = errors.New("booking already exists")
	// ErrOverlap marks an insert whose range overlaps an existing booking on
	// the same room. Key uniqueness alone cannot catch this; the commit
	// transaction re-runs the overlap predicate.
	ErrOverlap = errors.New("booking overlaps an existing reservation")
)

// BookingRepository defines data access for bookings and their occupancies.
// Every mutation touching both entities runs as one transaction.
type BookingRepository interface {
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByKey(ctx context.Context, roomNr, startDate string) (*models.Booking, error)
	FindByClientEmail(ctx context.Context, email string) ([]models.Booking, error)
	// RoomNrsBookedBetween returns the distinct room numbers with a booking
	// overlapping [startDate, endDate).
	RoomNrsBookedBetween(ctx context.Context, startDate, endDate string) ([]string, error)

	// Create inserts a booking without an occupancy (admin direct entry).
	// Returns ErrOverlap or ErrDuplicateBooking on conflict.
	Create(ctx context.Context, booking *models.Booking) error
	// Update rewrites the booking's end date and price. The new range runs
	// the same overlap predicate as Create, excluding the booking itself;
	// returns ErrOverlap on conflict.
	Update(ctx context.Context, booking *models.Booking) error

	// CommitSettlement records the payment event ID, re-checks the overlap
	// invariant and inserts the booking plus its occupancy, all in one
	// transaction. Returns ErrDuplicateEvent, ErrDuplicateBooking or
	// ErrOverlap without touching state.
	CommitSettlement(ctx context.Context, eventID string, booking *models.Booking, occ *models.Occupancy) error

	// Delete removes the booking and any occupancies linked to it in one
	// transaction.
	Delete(ctx context.Context, roomNr, startDate string) error
}
