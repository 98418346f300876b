package store

import (
	"context"
	"slices"

	"github.com/patrickmn/go-cache"

	"hostel-registry/internal/model"
)

const (
	keyRooms      = "rooms"
	keyRoomCount  = "rooms:count"
	keyWaiting    = "waiting"
	keyRoomPrefix = "room:"
)

type cachedRoom struct {
	occ   model.Occupancy
	found bool
}

// cachedStore serves reads from an in-memory cache and flushes it on every
// write, so a read never observes state older than the last write.
type cachedStore struct {
	inner Store
	cache *cache.Cache
}

// NewCachedStore wraps inner with a read cache.
func NewCachedStore(inner Store, c *cache.Cache) Store {
	return &cachedStore{inner: inner, cache: c}
}

func (s *cachedStore) GetRoom(ctx context.Context, room string) (model.Occupancy, bool, error) {
	key := keyRoomPrefix + room
	if v, found := s.cache.Get(key); found {
		hit := v.(cachedRoom)
		return hit.occ, hit.found, nil
	}

	occ, found, err := s.inner.GetRoom(ctx, room)
	if err != nil {
		return occ, found, err
	}
	s.cache.SetDefault(key, cachedRoom{occ: occ, found: found})
	return occ, found, nil
}

func (s *cachedStore) ListRooms(ctx context.Context) ([]model.Occupancy, error) {
	if v, found := s.cache.Get(keyRooms); found {
		return slices.Clone(v.([]model.Occupancy)), nil
	}

	list, err := s.inner.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyRooms, slices.Clone(list))
	return list, nil
}

func (s *cachedStore) CountRooms(ctx context.Context) (int, error) {
	if v, found := s.cache.Get(keyRoomCount); found {
		return v.(int), nil
	}

	n, err := s.inner.CountRooms(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.SetDefault(keyRoomCount, n)
	return n, nil
}

func (s *cachedStore) ListWaiting(ctx context.Context) ([]model.WaitEntry, error) {
	if v, found := s.cache.Get(keyWaiting); found {
		return slices.Clone(v.([]model.WaitEntry)), nil
	}

	list, err := s.inner.ListWaiting(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyWaiting, slices.Clone(list))
	return list, nil
}

// PeekWaiting is not cached; it precedes a write in every caller.
func (s *cachedStore) PeekWaiting(ctx context.Context) (model.WaitEntry, bool, error) {
	return s.inner.PeekWaiting(ctx)
}

func (s *cachedStore) InsertRoom(ctx context.Context, occ model.Occupancy) error {
	defer s.cache.Flush()
	return s.inner.InsertRoom(ctx, occ)
}

func (s *cachedStore) DeleteRoom(ctx context.Context, room string) (model.Occupancy, bool, error) {
	defer s.cache.Flush()
	return s.inner.DeleteRoom(ctx, room)
}

func (s *cachedStore) PushWaiting(ctx context.Context, entry model.WaitEntry) error {
	defer s.cache.Flush()
	return s.inner.PushWaiting(ctx, entry)
}

func (s *cachedStore) RemoveWaiting(ctx context.Context, ticket string) (model.WaitEntry, bool, error) {
	defer s.cache.Flush()
	return s.inner.RemoveWaiting(ctx, ticket)
}
