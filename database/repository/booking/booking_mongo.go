package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"staywise/database"
	"staywise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl   *mongo.Collection
	occupancyColl *mongo.Collection
	eventColl     *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &MongoBookingRepo{
		bookingColl:   db.Collection("bookings"),
		occupancyColl: db.Collection("occupancies"),
		eventColl:     db.Collection("payment_events"),
	}
}

func (repo *MongoBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) GetByKey(ctx context.Context, roomNr, startDate string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"roomNr": roomNr, "startDate": startDate}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking (%s, %s): %w", roomNr, startDate, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) FindByClientEmail(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctx, bson.M{"clientEmail": email})
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// overlapFilter matches bookings on a room whose [startDate, endDate) range
// overlaps the queried one. String comparison is safe for ISO dates.
func overlapFilter(roomNr, startDate, endDate string) bson.M {
	filter := bson.M{
		"startDate": bson.M{"$lt": endDate},
		"endDate":   bson.M{"$gt": startDate},
	}
	if roomNr != "" {
		filter["roomNr"] = roomNr
	}
	return filter
}

func (repo *MongoBookingRepo) RoomNrsBookedBetween(ctx context.Context, startDate, endDate string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := repo.bookingColl.Distinct(ctx, "roomNr", overlapFilter("", startDate, endDate))
	if err != nil {
		return nil, fmt.Errorf("error querying booked rooms: %w", err)
	}

	roomNrs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			roomNrs = append(roomNrs, s)
		}
	}
	return roomNrs, nil
}

// Update persists a new end date and price. The new range must not overlap
// any other booking on the room, so the write runs the same transactional
// overlap predicate as inserts, excluding the booking's own key.
func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		filter := overlapFilter(booking.RoomNr, booking.StartDate, booking.EndDate)
		filter["startDate"] = bson.M{"$lt": booking.EndDate, "$ne": booking.StartDate}
		n, err := repo.bookingColl.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}

		key := bson.M{"roomNr": booking.RoomNr, "startDate": booking.StartDate}
		update := bson.M{"$set": bson.M{"endDate": booking.EndDate, "price": booking.Price}}
		res, err := repo.bookingColl.UpdateOne(sc, key, update)
		if err != nil {
			return fmt.Errorf("error updating booking (%s, %s): %w", booking.RoomNr, booking.StartDate, err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}
