package payment

import (
	"context"

	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/pricing"
	"staywise/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// checkoutAPI is the slice of the Stripe client the orchestrator uses.
// Swapped out in tests.
type checkoutAPI interface {
	NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSession(id string) (*stripe.CheckoutSession, error)
}

type stripeCheckout struct{}

func (stripeCheckout) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (stripeCheckout) GetSession(id string) (*stripe.CheckoutSession, error) {
	return session.Get(id, nil)
}

// Orchestrator opens hosted checkout sessions with the payment processor. The
// session metadata is the only channel through which settlement later
// reconstructs the reservation, so every field must round-trip exactly.
type Orchestrator struct {
	Rooms      roomRepo.RoomRepository
	Pricing    *pricing.Engine
	SuccessURL string
	CancelURL  string

	logger   *zap.Logger
	checkout checkoutAPI
}

func NewOrchestrator(rooms roomRepo.RoomRepository, engine *pricing.Engine, successURL, cancelURL string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Rooms:      rooms,
		Pricing:    engine,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		logger:     logger,
		checkout:   stripeCheckout{},
	}
}

// OpenSession prices the stay and asks the processor for a hosted checkout
// session. A processor-side failure comes back as a structured failure
// response, not an error; only lookup and programming errors return error.
func (o *Orchestrator) OpenSession(ctx context.Context, emailUser, roomNr, startDate, endDate string) (*models.CheckoutResponse, error) {
	room, err := o.Rooms.GetByRoomNr(ctx, roomNr)
	if err != nil {
		if err == roomRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindNotFound, "room %s not found", roomNr)
		}
		return nil, err
	}

	price, err := o.Pricing.Quote(room, startDate, endDate)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindInvalidInput, "%v", err)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(o.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(o.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(price * 100), // minor units
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Room Booking"),
					},
				},
			},
		},
	}
	params.AddMetadata("emailUser", emailUser)
	params.AddMetadata("roomNr", roomNr)
	params.AddMetadata("startDate", startDate)
	params.AddMetadata("endDate", endDate)

	s, err := o.checkout.NewSession(params)
	if err != nil {
		o.logger.Error("failed to create checkout session",
			zap.String("roomNr", roomNr), zap.Error(err))
		return &models.CheckoutResponse{
			Status:  "failure",
			Message: "Failed to create checkout session",
		}, nil
	}

	return &models.CheckoutResponse{
		Status:       "SUCCESS",
		Message:      "Session created",
		CheckoutID:   s.ID,
		CheckoutLink: s.URL,
	}, nil
}

// SessionDetails is the pass-through read used by the frontend confirmation poll.
func (o *Orchestrator) SessionDetails(ctx context.Context, sessionID string) (*models.CheckoutSessionDetails, error) {
	s, err := o.checkout.GetSession(sessionID)
	if err != nil {
		return nil, utils.NewDomainError(utils.KindUpstreamPayment, "failed to retrieve session details: %v", err)
	}
	return &models.CheckoutSessionDetails{
		AmountTotal:   s.AmountTotal,
		Metadata:      s.Metadata,
		PaymentStatus: string(s.PaymentStatus),
		Status:        string(s.Status),
	}, nil
}
