package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-registry/internal/model"
)

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetRoom(ctx context.Context, room string) (model.Occupancy, bool, error) {
	var row model.RoomAssignment
	err := s.db.WithContext(ctx).First(&row, "room_id = ?", room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Occupancy{}, false, nil
	}
	if err != nil {
		return model.Occupancy{}, false, fmt.Errorf("failed to fetch room %q: %w", room, err)
	}
	return row.Occupancy(), true, nil
}

// InsertRoom adds the occupancy only if the room is free. The conflict check
// is left to the primary key so it holds even without a prior lookup.
func (s *gormStore) InsertRoom(ctx context.Context, occ model.Occupancy) error {
	row := model.NewRoomAssignment(occ)
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to assign room %q: %w", occ.Room, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, room string) (model.Occupancy, bool, error) {
	var (
		row   model.RoomAssignment
		found bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&row, "room_id = ?", room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.RoomAssignment{}, "room_id = ?", room).Error; err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return model.Occupancy{}, false, fmt.Errorf("failed to vacate room %q: %w", room, err)
	}
	if !found {
		return model.Occupancy{}, false, nil
	}
	return row.Occupancy(), true, nil
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Occupancy, error) {
	var rows []model.RoomAssignment
	if err := s.db.WithContext(ctx).Order("room_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	list := make([]model.Occupancy, len(rows))
	for i, r := range rows {
		list[i] = r.Occupancy()
	}
	return list, nil
}

func (s *gormStore) CountRooms(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.RoomAssignment{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return int(n), nil
}

func (s *gormStore) PushWaiting(ctx context.Context, entry model.WaitEntry) error {
	row := model.NewWaitlistEntry(entry)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", entry.Resident.StudentID, err)
	}
	return nil
}

func (s *gormStore) PeekWaiting(ctx context.Context) (model.WaitEntry, bool, error) {
	var row model.WaitlistEntry
	err := s.db.WithContext(ctx).Order("id").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WaitEntry{}, false, nil
	}
	if err != nil {
		return model.WaitEntry{}, false, fmt.Errorf("failed to fetch waiting list head: %w", err)
	}
	return row.WaitEntry(), true, nil
}

func (s *gormStore) RemoveWaiting(ctx context.Context, ticket string) (model.WaitEntry, bool, error) {
	var (
		row   model.WaitlistEntry
		found bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&row, "ticket = ?", ticket).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.WaitlistEntry{}, row.ID).Error; err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return model.WaitEntry{}, false, fmt.Errorf("failed to remove ticket %s: %w", ticket, err)
	}
	if !found {
		return model.WaitEntry{}, false, nil
	}
	return row.WaitEntry(), true, nil
}

func (s *gormStore) ListWaiting(ctx context.Context) ([]model.WaitEntry, error) {
	var rows []model.WaitlistEntry
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list waiting list: %w", err)
	}
	list := make([]model.WaitEntry, len(rows))
	for i, r := range rows {
		list[i] = r.WaitEntry()
	}
	return list, nil
}
