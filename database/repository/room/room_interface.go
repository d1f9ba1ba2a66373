package roomRepo

import (
	"context"
	"errors"

	"staywise/models"
)

// ErrNotFound is returned when no room matches the given room number.
var ErrNotFound = errors.New("room not found")

// RoomRepository defines data access for the room catalog.
type RoomRepository interface {
	GetAll(ctx context.Context) ([]models.Room, error)
	GetByRoomNr(ctx context.Context, roomNr string) (*models.Room, error)
	// FindByMinOccupancy returns rooms whose capacity is at least minOccupancy,
	// excluding the given room numbers.
	FindByMinOccupancy(ctx context.Context, minOccupancy int, excludeRoomNrs []string) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, roomNr string) error
}
