package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-registry/internal/model"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func occupancy(room, name, id string) model.Occupancy {
	return model.Occupancy{
		Room:       room,
		Resident:   model.NewResident(name, id, "012-0000000"),
		AssignedAt: baseTime,
	}
}

func waitEntry(ticket, name, id string, offset time.Duration) model.WaitEntry {
	return model.WaitEntry{
		Ticket:     ticket,
		Resident:   model.NewResident(name, id, "015-0000000"),
		EnqueuedAt: baseTime.Add(offset),
	}
}

func rooms(list []model.Occupancy) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.Room
	}
	return out
}

func tickets(list []model.WaitEntry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Ticket
	}
	return out
}

// newSQLiteDB opens a private in-memory database for the running test.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.RoomAssignment{}, &model.WaitlistEntry{}))
	return db
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var storeFactories = []struct {
	name string
	new  func(t *testing.T) Store
}{
	{"memory", func(t *testing.T) Store { return NewMemoryStore() }},
	{"gorm", func(t *testing.T) Store { return NewGormStore(newSQLiteDB(t)) }},
	{"cached memory", func(t *testing.T) Store {
		return NewCachedStore(NewMemoryStore(), cache.New(time.Minute, 10*time.Minute))
	}},
	{"cached gorm", func(t *testing.T) Store {
		return NewCachedStore(NewGormStore(newSQLiteDB(t)), cache.New(time.Minute, 10*time.Minute))
	}},
}

func TestStore_Rooms(t *testing.T) {
	ctx := context.Background()

	for _, f := range storeFactories {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(t)

			_, found, err := s.GetRoom(ctx, "101")
			require.NoError(t, err)
			assert.False(t, found, "empty store should not find a room")

			want := occupancy("101", "Ahmad Zaki", "A001")
			require.NoError(t, s.InsertRoom(ctx, want))
			require.NoError(t, s.InsertRoom(ctx, occupancy("105", "Kumar Raj", "A003")))

			got, found, err := s.GetRoom(ctx, "101")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, want.Room, got.Room)
			assert.Equal(t, want.Resident, got.Resident)
			assert.True(t, want.AssignedAt.Equal(got.AssignedAt))

			err = s.InsertRoom(ctx, occupancy("101", "Siti Nur", "A002"))
			assert.ErrorIs(t, err, ErrConflict)

			got, _, err = s.GetRoom(ctx, "101")
			require.NoError(t, err)
			assert.Equal(t, "Ahmad Zaki", got.Resident.Name, "a conflicting insert must not overwrite")

			n, err := s.CountRooms(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			list, err := s.ListRooms(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"101", "105"}, rooms(list))

			removed, found, err := s.DeleteRoom(ctx, "101")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, want.Resident, removed.Resident)

			_, found, err = s.DeleteRoom(ctx, "101")
			require.NoError(t, err)
			assert.False(t, found)

			_, found, err = s.GetRoom(ctx, "101")
			require.NoError(t, err)
			assert.False(t, found)

			n, err = s.CountRooms(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestStore_Waiting(t *testing.T) {
	ctx := context.Background()

	for _, f := range storeFactories {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(t)

			_, found, err := s.PeekWaiting(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			list, err := s.ListWaiting(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			require.NoError(t, s.PushWaiting(ctx, waitEntry("t-1", "Lee Ming", "A004", 0)))
			require.NoError(t, s.PushWaiting(ctx, waitEntry("t-2", "Fatimah Ali", "A005", time.Second)))
			require.NoError(t, s.PushWaiting(ctx, waitEntry("t-3", "Tan Wei", "A006", 2*time.Second)))

			list, err = s.ListWaiting(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"t-1", "t-2", "t-3"}, tickets(list))

			head, found, err := s.PeekWaiting(ctx)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "t-1", head.Ticket)
			assert.Equal(t, "Lee Ming", head.Resident.Name)

			removed, found, err := s.RemoveWaiting(ctx, "t-2")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "Fatimah Ali", removed.Resident.Name)

			_, found, err = s.RemoveWaiting(ctx, "t-2")
			require.NoError(t, err)
			assert.False(t, found)

			list, err = s.ListWaiting(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"t-1", "t-3"}, tickets(list))

			_, _, err = s.RemoveWaiting(ctx, "t-1")
			require.NoError(t, err)
			head, found, err = s.PeekWaiting(ctx)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "t-3", head.Ticket)
		})
	}
}

func TestGormStore_SQL(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing room is not an error", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "room_assignments" WHERE room_id = \$1`).
			WithArgs("104", Any{}).
			WillReturnRows(sqlmock.NewRows([]string{"room_id", "name", "student_id", "contact", "assigned_at"}))

		_, found, err := s.GetRoom(ctx, "104")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Count uses an aggregate", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "room_assignments"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		n, err := s.CountRooms(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert skips occupied rooms", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "room_assignments" .* ON CONFLICT DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := s.InsertRoom(ctx, occupancy("101", "Siti Nur", "A002"))
		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database errors are wrapped", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "waitlist_entries" ORDER BY id`).
			WillReturnError(fmt.Errorf("connection reset"))

		_, err := s.ListWaiting(ctx)
		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
