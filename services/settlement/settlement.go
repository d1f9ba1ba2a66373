package settlement

import (
	"context"
	"encoding/json"

	accountRepo "staywise/database/repository/account"
	bookingRepo "staywise/database/repository/booking"
	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/alert"
	"staywise/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Outcome classifies what a verified event did.
type Outcome string

const (
	OutcomeSettled   Outcome = "settled"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
)

// Result reports the settlement outcome for an accepted event.
type Result struct {
	Outcome Outcome
	Booking *models.Booking
}

// Processor turns verified "checkout session completed" events into committed
// bookings. Delivery is at-least-once and unordered, so the commit must be
// idempotent; authenticity is checked before anything else is even parsed.
type Processor struct {
	Bookings      bookingRepo.BookingRepository
	Rooms         roomRepo.RoomRepository
	Accounts      accountRepo.AccountRepository
	Alerts        alert.Notifier
	WebhookSecret string

	logger *zap.Logger
}

func NewProcessor(
	bookings bookingRepo.BookingRepository,
	rooms roomRepo.RoomRepository,
	accounts accountRepo.AccountRepository,
	alerts alert.Notifier,
	webhookSecret string,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		Bookings:      bookings,
		Rooms:         rooms,
		Accounts:      accounts,
		Alerts:        alerts,
		WebhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleEvent verifies the raw payload against the signature header and, for a
// completed checkout, commits the booking described by the session metadata.
func (p *Processor) HandleEvent(ctx context.Context, payload []byte, sigHeader string) (*Result, error) {
	// Signature over the raw bytes, before any structured parsing. An
	// unverified payload never influences state.
	event, err := webhook.ConstructEvent(payload, sigHeader, p.WebhookSecret)
	if err != nil {
		p.logger.Warn("webhook signature verification failed", zap.Error(err))
		return nil, utils.NewDomainError(utils.KindInvalidSig, "invalid signature")
	}

	if event.Type != "checkout.session.completed" {
		p.logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "malformed checkout session payload")
	}

	meta := sessionMetadata{
		RoomNr:    session.Metadata["roomNr"],
		StartDate: session.Metadata["startDate"],
		EndDate:   session.Metadata["endDate"],
		EmailUser: session.Metadata["emailUser"],
	}
	amount := session.AmountTotal / 100 // back from minor units

	if !meta.complete() {
		return nil, p.inconsistency(ctx, event.ID, meta, amount, "checkout session metadata incomplete")
	}

	// The account must still exist; the payment is already captured.
	client, err := p.Accounts.GetByEmail(ctx, meta.EmailUser)
	if err != nil || client.Role != models.RoleClient {
		if err != nil && err != accountRepo.ErrNotFound {
			return nil, err
		}
		return nil, p.inconsistency(ctx, event.ID, meta, amount, "client account missing at settlement time")
	}

	if _, err := p.Rooms.GetByRoomNr(ctx, meta.RoomNr); err != nil {
		if err != roomRepo.ErrNotFound {
			return nil, err
		}
		return nil, p.inconsistency(ctx, event.ID, meta, amount, "room missing at settlement time")
	}

	booking := &models.Booking{
		RoomNr:      meta.RoomNr,
		StartDate:   meta.StartDate,
		EndDate:     meta.EndDate,
		Price:       amount,
		ClientEmail: client.Email,
	}
	occ := &models.Occupancy{
		ClientEmail: client.Email,
		RoomNr:      meta.RoomNr,
		StartDate:   meta.StartDate,
	}

	switch err := p.Bookings.CommitSettlement(ctx, event.ID, booking, occ); err {
	case nil:
		p.logger.Info("settlement committed",
			zap.String("eventId", event.ID),
			zap.String("roomNr", booking.RoomNr),
			zap.String("startDate", booking.StartDate),
			zap.Int64("price", booking.Price))
		return &Result{Outcome: OutcomeSettled, Booking: booking}, nil
	case bookingRepo.ErrDuplicateEvent, bookingRepo.ErrDuplicateBooking:
		// At-least-once delivery; acknowledge and move on.
		p.logger.Info("duplicate settlement event acknowledged", zap.String("eventId", event.ID))
		return &Result{Outcome: OutcomeDuplicate}, nil
	case bookingRepo.ErrOverlap:
		// Two checkout sessions raced for overlapping stays and both were
		// paid. A human has to refund one of them.
		if aerr := p.inconsistency(ctx, event.ID, meta, amount, "paid stay overlaps a committed booking"); aerr != nil {
			_ = aerr
		}
		return nil, utils.NewDomainError(utils.KindConflict, "room %s already booked for an overlapping stay", meta.RoomNr)
	default:
		return nil, err
	}
}

type sessionMetadata struct {
	RoomNr    string
	StartDate string
	EndDate   string
	EmailUser string
}

func (m sessionMetadata) complete() bool {
	return m.RoomNr != "" && m.StartDate != "" && m.EndDate != "" && m.EmailUser != ""
}

// inconsistency raises an operator alert and returns the settlement error.
// Money has moved without a booking existing; this path must never be quiet.
func (p *Processor) inconsistency(ctx context.Context, eventID string, meta sessionMetadata, amount int64, reason string) error {
	a := models.SettlementAlert{
		IncidentID: uuid.New().String(),
		Reason:     reason,
		EventID:    eventID,
		RoomNr:     meta.RoomNr,
		StartDate:  meta.StartDate,
		EndDate:    meta.EndDate,
		EmailUser:  meta.EmailUser,
		Amount:     amount,
	}
	p.logger.Error("settlement inconsistency",
		zap.String("incidentId", a.IncidentID),
		zap.String("eventId", eventID),
		zap.String("reason", reason))
	if err := p.Alerts.SettlementInconsistency(ctx, a); err != nil {
		p.logger.Error("failed to escalate settlement inconsistency", zap.Error(err))
	}
	return utils.NewDomainError(utils.KindInconsistency, "%s", reason)
}
