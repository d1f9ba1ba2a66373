package roomRepo

import (
	"context"
	"fmt"
	"time"

	"staywise/database"
	"staywise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new instance of MongoRoomRepo.
func NewMongoRoomRepo() RoomRepository {
	return &MongoRoomRepo{
		coll: database.DB().Collection("rooms"),
	}
}

func (repo *MongoRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

func (repo *MongoRoomRepo) GetByRoomNr(ctx context.Context, roomNr string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := repo.coll.FindOne(ctx, bson.M{"roomNr": roomNr}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching room %s: %w", roomNr, err)
	}
	return &room, nil
}

func (repo *MongoRoomRepo) FindByMinOccupancy(ctx context.Context, minOccupancy int, excludeRoomNrs []string) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"maxOccupancy": bson.M{"$gte": minOccupancy}}
	if len(excludeRoomNrs) > 0 {
		filter["roomNr"] = bson.M{"$nin": excludeRoomNrs}
	}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

func (repo *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("error creating room %s: %w", room.RoomNr, err)
	}
	return nil
}

func (repo *MongoRoomRepo) Update(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"roomNr": room.RoomNr}, room)
	if err != nil {
		return fmt.Errorf("error updating room %s: %w", room.RoomNr, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoRoomRepo) Delete(ctx context.Context, roomNr string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"roomNr": roomNr})
	if err != nil {
		return fmt.Errorf("error deleting room %s: %w", roomNr, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
