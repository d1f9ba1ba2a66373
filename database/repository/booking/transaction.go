package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"staywise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runTxn executes fn inside a MongoDB transaction on the bookings collection's
// client. Errors from fn abort the transaction untouched.
func (repo *MongoBookingRepo) runTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// insertBookingChecked re-runs the overlap predicate and inserts the booking.
// The unique (roomNr, startDate) index backstops identical start dates; the
// count query closes the overlap gap across different start dates.
func (repo *MongoBookingRepo) insertBookingChecked(sc mongo.SessionContext, booking *models.Booking) error {
	n, err := repo.bookingColl.CountDocuments(sc, overlapFilter(booking.RoomNr, booking.StartDate, booking.EndDate))
	if err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if n > 0 {
		return ErrOverlap
	}

	if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		return repo.insertBookingChecked(sc, booking)
	}); err != nil {
		return err
	}
	return nil
}

func (repo *MongoBookingRepo) CommitSettlement(ctx context.Context, eventID string, booking *models.Booking, occ *models.Occupancy) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		// The event ID is the idempotency key: a redelivered event collides
		// here and the whole transaction aborts with no state change.
		record := bson.M{"_id": eventID, "processedAt": time.Now()}
		if _, err := repo.eventColl.InsertOne(sc, record); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateEvent
			}
			return fmt.Errorf("insert payment event failed: %w", err)
		}

		if err := repo.insertBookingChecked(sc, booking); err != nil {
			return err
		}

		if _, err := repo.occupancyColl.InsertOne(sc, occ); err != nil {
			return fmt.Errorf("insert occupancy failed: %w", err)
		}
		return nil
	})
}

func (repo *MongoBookingRepo) Delete(ctx context.Context, roomNr, startDate string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		// Occupancies first, then the booking itself.
		if _, err := repo.occupancyColl.DeleteMany(sc, bson.M{"roomNr": roomNr, "startDate": startDate}); err != nil {
			return fmt.Errorf("delete occupancies failed: %w", err)
		}
		res, err := repo.bookingColl.DeleteOne(sc, bson.M{"roomNr": roomNr, "startDate": startDate})
		if err != nil {
			return fmt.Errorf("delete booking failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}
