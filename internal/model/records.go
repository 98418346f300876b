package model

import "time"

// RoomAssignment is the table row behind an occupied room.
type RoomAssignment struct {
	RoomID     string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"size:256;not null"`
	StudentID  string    `gorm:"size:64;index;not null"`
	Contact    string    `gorm:"size:128;not null"`
	AssignedAt time.Time `gorm:"not null"`
}

// NewRoomAssignment builds the row for an occupancy.
func NewRoomAssignment(o Occupancy) RoomAssignment {
	return RoomAssignment{
		RoomID:     o.Room,
		Name:       o.Resident.Name,
		StudentID:  o.Resident.StudentID,
		Contact:    o.Resident.Contact,
		AssignedAt: o.AssignedAt,
	}
}

// Occupancy converts the row back to its domain value.
func (a RoomAssignment) Occupancy() Occupancy {
	return Occupancy{
		Room:       a.RoomID,
		Resident:   NewResident(a.Name, a.StudentID, a.Contact),
		AssignedAt: a.AssignedAt,
	}
}

// WaitlistEntry is the table row behind a waiting-list position.
// ID gives the FIFO order.
type WaitlistEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Ticket     string    `gorm:"uniqueIndex;size:36;not null"`
	Name       string    `gorm:"size:256;not null"`
	StudentID  string    `gorm:"size:64;not null"`
	Contact    string    `gorm:"size:128;not null"`
	EnqueuedAt time.Time `gorm:"not null"`
}

// NewWaitlistEntry builds the row for a waiting-list position.
func NewWaitlistEntry(e WaitEntry) WaitlistEntry {
	return WaitlistEntry{
		Ticket:     e.Ticket,
		Name:       e.Resident.Name,
		StudentID:  e.Resident.StudentID,
		Contact:    e.Resident.Contact,
		EnqueuedAt: e.EnqueuedAt,
	}
}

// WaitEntry converts the row back to its domain value.
func (w WaitlistEntry) WaitEntry() WaitEntry {
	return WaitEntry{
		Ticket:     w.Ticket,
		Resident:   NewResident(w.Name, w.StudentID, w.Contact),
		EnqueuedAt: w.EnqueuedAt,
	}
}
