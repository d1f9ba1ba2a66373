package reservation

import (
	"context"

	accountRepo "staywise/database/repository/account"
	bookingRepo "staywise/database/repository/booking"
	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/pricing"
	"staywise/utils"

	"go.uber.org/zap"
)

// Service owns the booking lifecycle outside the payment path: admin direct
// entry, updates, cancellation and reads.
type Service struct {
	Bookings bookingRepo.BookingRepository
	Rooms    roomRepo.RoomRepository
	Accounts accountRepo.AccountRepository
	Pricing  *pricing.Engine

	logger *zap.Logger
}

func NewService(
	bookings bookingRepo.BookingRepository,
	rooms roomRepo.RoomRepository,
	accounts accountRepo.AccountRepository,
	engine *pricing.Engine,
	logger *zap.Logger,
) *Service {
	return &Service{
		Bookings: bookings,
		Rooms:    rooms,
		Accounts: accounts,
		Pricing:  engine,
		logger:   logger,
	}
}

// CreateDirect persists a booking without any payment step (admin path). It
// deliberately creates no occupancy record; only settled payments do.
func (s *Service) CreateDirect(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	room, err := s.Rooms.GetByRoomNr(ctx, input.RoomNr)
	if err != nil {
		if err == roomRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindNotFound, "room %s not found", input.RoomNr)
		}
		return nil, err
	}

	client, err := s.Accounts.GetByEmail(ctx, input.ClientEmail)
	if err != nil {
		if err == accountRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindNotFound, "client %s not found", input.ClientEmail)
		}
		return nil, err
	}

	price, err := s.Pricing.Quote(room, input.StartDate, input.EndDate)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "%v", err)
	}

	booking := &models.Booking{
		RoomNr:      input.RoomNr,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       price,
		ClientEmail: client.Email,
	}

	switch err := s.Bookings.Create(ctx, booking); err {
	case nil:
		s.logger.Info("booking created directly",
			zap.String("roomNr", booking.RoomNr),
			zap.String("startDate", booking.StartDate),
			zap.String("clientEmail", booking.ClientEmail))
		return booking, nil
	case bookingRepo.ErrOverlap, bookingRepo.ErrDuplicateBooking:
		return nil, utils.NewDomainError(utils.KindConflict, "room %s already booked for an overlapping stay", input.RoomNr)
	default:
		return nil, err
	}
}

// Update changes a booking's end date and reprices the stay.
func (s *Service) Update(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	booking, err := s.Bookings.GetByKey(ctx, input.RoomNr, input.StartDate)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindNotFound, "booking (%s, %s) not found", input.RoomNr, input.StartDate)
		}
		return nil, err
	}

	room, err := s.Rooms.GetByRoomNr(ctx, input.RoomNr)
	if err != nil {
		if err == roomRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindNotFound, "room %s not found", input.RoomNr)
		}
		return nil, err
	}

	price, err := s.Pricing.Quote(room, input.StartDate, input.EndDate)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "%v", err)
	}

	booking.EndDate = input.EndDate
	booking.Price = price
	switch err := s.Bookings.Update(ctx, booking); err {
	case nil:
		return booking, nil
	case bookingRepo.ErrOverlap:
		return nil, utils.NewDomainError(utils.KindConflict, "room %s already booked for an overlapping stay", input.RoomNr)
	default:
		return nil, err
	}
}

// Cancel removes a booking on behalf of its owner. An email mismatch is an
// authorization failure, not a not-found.
func (s *Service) Cancel(ctx context.Context, roomNr, startDate string, requester models.Identity) error {
	booking, err := s.Bookings.GetByKey(ctx, roomNr, startDate)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return utils.NewDomainError(utils.KindNotFound, "booking (%s, %s) not found", roomNr, startDate)
		}
		return err
	}

	if booking.ClientEmail != requester.Email {
		return utils.NewDomainError(utils.KindUnauthorized, "you are not authorized to cancel this booking")
	}

	return s.delete(ctx, roomNr, startDate)
}

// CancelAdmin removes a booking without an ownership check.
func (s *Service) CancelAdmin(ctx context.Context, roomNr, startDate string) error {
	return s.delete(ctx, roomNr, startDate)
}

func (s *Service) delete(ctx context.Context, roomNr, startDate string) error {
	switch err := s.Bookings.Delete(ctx, roomNr, startDate); err {
	case nil:
		s.logger.Info("booking cancelled",
			zap.String("roomNr", roomNr), zap.String("startDate", startDate))
		return nil
	case bookingRepo.ErrNotFound:
		return utils.NewDomainError(utils.KindNotFound, "booking (%s, %s) not found", roomNr, startDate)
	default:
		return err
	}
}

func (s *Service) ListByClient(ctx context.Context, email string) ([]models.Booking, error) {
	return s.Bookings.FindByClientEmail(ctx, email)
}

func (s *Service) GetAll(ctx context.Context) ([]models.Booking, error) {
	return s.Bookings.GetAll(ctx)
}

func (s *Service) GetByKey(ctx context.Context, roomNr, startDate string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByKey(ctx, roomNr, startDate)
	if err == bookingRepo.ErrNotFound {
		return nil, utils.NewDomainError(utils.KindNotFound, "booking (%s, %s) not found", roomNr, startDate)
	}
	return booking, err
}
