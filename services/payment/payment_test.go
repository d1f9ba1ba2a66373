package payment

import (
	"context"
	"errors"
	"testing"

	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/pricing"
	"staywise/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type fakeCheckout struct {
	lastParams *stripe.CheckoutSessionParams
	newErr     error
	getErr     error
	session    *stripe.CheckoutSession
}

func (f *fakeCheckout) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.lastParams = params
	if f.newErr != nil {
		return nil, f.newErr
	}
	return f.session, nil
}

func (f *fakeCheckout) GetSession(id string) (*stripe.CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.session, nil
}

type singleRoomRepo struct {
	room models.Room
}

func (s *singleRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) { return nil, nil }

func (s *singleRoomRepo) GetByRoomNr(ctx context.Context, roomNr string) (*models.Room, error) {
	if roomNr != s.room.RoomNr {
		return nil, roomRepo.ErrNotFound
	}
	r := s.room
	return &r, nil
}

func (s *singleRoomRepo) FindByMinOccupancy(ctx context.Context, minOccupancy int, excludeRoomNrs []string) ([]models.Room, error) {
	return nil, nil
}
func (s *singleRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }
func (s *singleRoomRepo) Update(ctx context.Context, room *models.Room) error { return nil }
func (s *singleRoomRepo) Delete(ctx context.Context, roomNr string) error     { return nil }

func newTestOrchestrator(fake *fakeCheckout) *Orchestrator {
	o := NewOrchestrator(
		&singleRoomRepo{room: models.Room{RoomNr: "101", BasePrice: 100}},
		pricing.NewEngine(),
		"https://example.com/success",
		"https://example.com/cancel",
		zap.NewNop(),
	)
	o.checkout = fake
	return o
}

func TestOpenSessionBuildsPricedSession(t *testing.T) {
	fake := &fakeCheckout{session: &stripe.CheckoutSession{
		ID:  "cs_test_1",
		URL: "https://checkout.example.com/cs_test_1",
	}}
	o := newTestOrchestrator(fake)

	resp, err := o.OpenSession(context.Background(), "a@b.com", "101", "2024-01-01", "2024-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "SUCCESS" {
		t.Errorf("expected SUCCESS status, got %s", resp.Status)
	}
	if resp.CheckoutID != "cs_test_1" || resp.CheckoutLink != "https://checkout.example.com/cs_test_1" {
		t.Errorf("session ids not passed through: %+v", resp)
	}

	params := fake.lastParams
	if params == nil {
		t.Fatal("no session params sent")
	}
	if got := *params.LineItems[0].PriceData.UnitAmount; got != 40000 {
		t.Errorf("expected unit amount 40000 minor units for a 4-night stay at 100, got %d", got)
	}
	want := map[string]string{
		"emailUser": "a@b.com",
		"roomNr":    "101",
		"startDate": "2024-01-01",
		"endDate":   "2024-01-05",
	}
	for k, v := range want {
		if params.Metadata[k] != v {
			t.Errorf("metadata[%s] = %q, want %q", k, params.Metadata[k], v)
		}
	}
	if got := *params.SuccessURL; got != "https://example.com/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("success url missing session placeholder: %s", got)
	}
}

func TestOpenSessionUnknownRoom(t *testing.T) {
	o := newTestOrchestrator(&fakeCheckout{})
	_, err := o.OpenSession(context.Background(), "a@b.com", "999", "2024-01-01", "2024-01-05")
	if utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("expected notFound, got %v", err)
	}
}

func TestOpenSessionProcessorFailureIsAFailureResponse(t *testing.T) {
	fake := &fakeCheckout{newErr: errors.New("stripe down")}
	o := newTestOrchestrator(fake)

	resp, err := o.OpenSession(context.Background(), "a@b.com", "101", "2024-01-01", "2024-01-05")
	if err != nil {
		t.Fatalf("processor failure must not surface as error: %v", err)
	}
	if resp.Status != "failure" {
		t.Errorf("expected failure status, got %s", resp.Status)
	}
	if resp.CheckoutID != "" || resp.CheckoutLink != "" {
		t.Errorf("failure response carries session fields: %+v", resp)
	}
}

func TestSessionDetails(t *testing.T) {
	fake := &fakeCheckout{session: &stripe.CheckoutSession{
		AmountTotal:   40000,
		Metadata:      map[string]string{"roomNr": "101"},
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Status:        stripe.CheckoutSessionStatusComplete,
	}}
	o := newTestOrchestrator(fake)

	details, err := o.SessionDetails(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.AmountTotal != 40000 || details.Metadata["roomNr"] != "101" {
		t.Errorf("details not passed through: %+v", details)
	}
	if details.PaymentStatus != "paid" || details.Status != "complete" {
		t.Errorf("status fields not passed through: %+v", details)
	}
}

func TestSessionDetailsUpstreamFailure(t *testing.T) {
	o := newTestOrchestrator(&fakeCheckout{getErr: errors.New("stripe down")})
	_, err := o.SessionDetails(context.Background(), "cs_test_1")
	if utils.KindOf(err) != utils.KindUpstreamPayment {
		t.Errorf("expected upstreamPaymentError, got %v", err)
	}
}
