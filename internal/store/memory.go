package store

import (
	"context"
	"slices"

	"hostel-registry/internal/model"
)

// memoryStore keeps the rooms in a map and the waiting list in a slice.
// It is not safe for concurrent use.
type memoryStore struct {
	rooms   map[string]model.Occupancy
	waiting []model.WaitEntry
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() Store {
	return &memoryStore{rooms: make(map[string]model.Occupancy)}
}

func (s *memoryStore) GetRoom(_ context.Context, room string) (model.Occupancy, bool, error) {
	occ, ok := s.rooms[room]
	return occ, ok, nil
}

func (s *memoryStore) InsertRoom(_ context.Context, occ model.Occupancy) error {
	if _, taken := s.rooms[occ.Room]; taken {
		return ErrConflict
	}
	s.rooms[occ.Room] = occ
	return nil
}

func (s *memoryStore) DeleteRoom(_ context.Context, room string) (model.Occupancy, bool, error) {
	occ, ok := s.rooms[room]
	if ok {
		delete(s.rooms, room)
	}
	return occ, ok, nil
}

func (s *memoryStore) ListRooms(_ context.Context) ([]model.Occupancy, error) {
	list := make([]model.Occupancy, 0, len(s.rooms))
	for _, occ := range s.rooms {
		list = append(list, occ)
	}
	return list, nil
}

func (s *memoryStore) CountRooms(_ context.Context) (int, error) {
	return len(s.rooms), nil
}

func (s *memoryStore) PushWaiting(_ context.Context, entry model.WaitEntry) error {
	s.waiting = append(s.waiting, entry)
	return nil
}

func (s *memoryStore) PeekWaiting(_ context.Context) (model.WaitEntry, bool, error) {
	if len(s.waiting) == 0 {
		return model.WaitEntry{}, false, nil
	}
	return s.waiting[0], true, nil
}

func (s *memoryStore) RemoveWaiting(_ context.Context, ticket string) (model.WaitEntry, bool, error) {
	i := slices.IndexFunc(s.waiting, func(e model.WaitEntry) bool { return e.Ticket == ticket })
	if i < 0 {
		return model.WaitEntry{}, false, nil
	}
	entry := s.waiting[i]
	s.waiting = slices.Delete(s.waiting, i, i+1)
	return entry, true, nil
}

func (s *memoryStore) ListWaiting(_ context.Context) ([]model.WaitEntry, error) {
	return slices.Clone(s.waiting), nil
}
