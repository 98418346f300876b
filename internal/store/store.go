package store

import (
	"context"
	"errors"

	"hostel-registry/internal/model"
)

// ErrConflict is returned by InsertRoom when the room already has an occupant.
var ErrConflict = errors.New("room already occupied")

// Store defines the collections owned by the registry: the room mapping and
// the FIFO waiting list.
type Store interface {
	GetRoom(ctx context.Context, room string) (model.Occupancy, bool, error)
	InsertRoom(ctx context.Context, occ model.Occupancy) error
	DeleteRoom(ctx context.Context, room string) (model.Occupancy, bool, error)
	ListRooms(ctx context.Context) ([]model.Occupancy, error)
	CountRooms(ctx context.Context) (int, error)

	PushWaiting(ctx context.Context, entry model.WaitEntry) error
	PeekWaiting(ctx context.Context) (model.WaitEntry, bool, error)
	RemoveWaiting(ctx context.Context, ticket string) (model.WaitEntry, bool, error)
	ListWaiting(ctx context.Context) ([]model.WaitEntry, error)
}
