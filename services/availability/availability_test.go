package availability

import (
	"context"
	"testing"

	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/pricing"
	"staywise/utils"
)

type fakeRoomRepo struct {
	rooms []models.Room
}

func (f *fakeRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) { return f.rooms, nil }

func (f *fakeRoomRepo) GetByRoomNr(ctx context.Context, roomNr string) (*models.Room, error) {
	for i := range f.rooms {
		if f.rooms[i].RoomNr == roomNr {
			return &f.rooms[i], nil
		}
	}
	return nil, roomRepo.ErrNotFound
}

func (f *fakeRoomRepo) FindByMinOccupancy(ctx context.Context, minOccupancy int, excludeRoomNrs []string) ([]models.Room, error) {
	excluded := make(map[string]bool, len(excludeRoomNrs))
	for _, nr := range excludeRoomNrs {
		excluded[nr] = true
	}
	var out []models.Room
	for _, r := range f.rooms {
		if r.MaxOccupancy >= minOccupancy && !excluded[r.RoomNr] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }
func (f *fakeRoomRepo) Update(ctx context.Context, room *models.Room) error { return nil }
func (f *fakeRoomRepo) Delete(ctx context.Context, roomNr string) error     { return nil }

type fakeBookingIndex struct {
	bookings []models.Booking
}

func (f *fakeBookingIndex) RoomNrsBookedBetween(ctx context.Context, startDate, endDate string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, b := range f.bookings {
		if b.StartDate < endDate && b.EndDate > startDate && !seen[b.RoomNr] {
			seen[b.RoomNr] = true
			out = append(out, b.RoomNr)
		}
	}
	return out, nil
}

func (f *fakeBookingIndex) GetAll(ctx context.Context) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingIndex) GetByKey(ctx context.Context, roomNr, startDate string) (*models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingIndex) FindByClientEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingIndex) Create(ctx context.Context, booking *models.Booking) error { return nil }
func (f *fakeBookingIndex) Update(ctx context.Context, booking *models.Booking) error { return nil }
func (f *fakeBookingIndex) CommitSettlement(ctx context.Context, eventID string, booking *models.Booking, occ *models.Occupancy) error {
	return nil
}
func (f *fakeBookingIndex) Delete(ctx context.Context, roomNr, startDate string) error { return nil }

func newResolver(rooms []models.Room, bookings []models.Booking) *Resolver {
	return &Resolver{
		Rooms:    &fakeRoomRepo{rooms: rooms},
		Bookings: &fakeBookingIndex{bookings: bookings},
		Pricing:  pricing.NewEngine(),
	}
}

func TestSearchExcludesOverlappingBookings(t *testing.T) {
	rooms := []models.Room{
		{RoomNr: "101", MaxOccupancy: 2, BasePrice: 100},
		{RoomNr: "102", MaxOccupancy: 2, BasePrice: 150},
	}
	booked := models.Booking{RoomNr: "101", StartDate: "2024-01-03", EndDate: "2024-01-07"}

	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{name: "queried range inside booking", start: "2024-01-04", end: "2024-01-06", want: []string{"102"}},
		{name: "booking inside queried range", start: "2024-01-01", end: "2024-01-10", want: []string{"102"}},
		{name: "overlap at start", start: "2024-01-01", end: "2024-01-04", want: []string{"102"}},
		{name: "overlap at end", start: "2024-01-06", end: "2024-01-09", want: []string{"102"}},
		{name: "checkout day back to back", start: "2024-01-07", end: "2024-01-09", want: []string{"101", "102"}},
		{name: "ends on checkin day", start: "2024-01-01", end: "2024-01-03", want: []string{"101", "102"}},
	}

	resolver := newResolver(rooms, []models.Booking{booked})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes, err := resolver.Search(context.Background(), tt.start, tt.end, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := make([]string, 0, len(quotes))
			for _, q := range quotes {
				got = append(got, q.Room.RoomNr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected rooms %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected rooms %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestSearchFiltersOnOccupancyAndPricesStay(t *testing.T) {
	rooms := []models.Room{
		{RoomNr: "101", MaxOccupancy: 2, BasePrice: 100},
		{RoomNr: "201", MaxOccupancy: 4, BasePrice: 250},
	}
	resolver := newResolver(rooms, nil)

	quotes, err := resolver.Search(context.Background(), "2024-01-01", "2024-01-05", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 room, got %d", len(quotes))
	}
	if quotes[0].Room.RoomNr != "201" {
		t.Errorf("expected room 201, got %s", quotes[0].Room.RoomNr)
	}
	if quotes[0].Price != 1000 {
		t.Errorf("expected price 1000, got %d", quotes[0].Price)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	resolver := newResolver(nil, nil)
	quotes, err := resolver.Search(context.Background(), "2024-01-01", "2024-01-05", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected no rooms, got %d", len(quotes))
	}
}

func TestSearchValidatesInput(t *testing.T) {
	resolver := newResolver(nil, nil)

	tests := []struct {
		name   string
		start  string
		end    string
		minOcc int
	}{
		{name: "inverted range", start: "2024-01-05", end: "2024-01-01", minOcc: 0},
		{name: "equal dates", start: "2024-01-01", end: "2024-01-01", minOcc: 0},
		{name: "negative occupancy", start: "2024-01-01", end: "2024-01-05", minOcc: -1},
		{name: "malformed date", start: "yesterday", end: "2024-01-05", minOcc: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Search(context.Background(), tt.start, tt.end, tt.minOcc)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if utils.KindOf(err) != utils.KindInvalidInput {
				t.Errorf("expected invalidInput kind, got %q", utils.KindOf(err))
			}
		})
	}
}
