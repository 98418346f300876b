package model

import (
	"fmt"
	"time"
)

// Resident holds the identity and contact details of one hostel resident.
type Resident struct {
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
	Contact   string `json:"contact"`
}

// NewResident creates a Resident. Values are taken as-is.
func NewResident(name, studentID, contact string) Resident {
	return Resident{Name: name, StudentID: studentID, Contact: contact}
}

// ToSerializable returns the flat mapping used for external encoding.
func (r Resident) ToSerializable() map[string]string {
	return map[string]string{
		"name":       r.Name,
		"student_id": r.StudentID,
		"contact":    r.Contact,
	}
}

// String renders the single display line for the resident.
func (r Resident) String() string {
	return fmt.Sprintf("Name: %s | ID: %s | Contact: %s", r.Name, r.StudentID, r.Contact)
}

// Occupancy is one occupied room.
type Occupancy struct {
	Room       string
	Resident   Resident
	AssignedAt time.Time
}

// WaitEntry is one position in the waiting list.
type WaitEntry struct {
	Ticket     string
	Resident   Resident
	EnqueuedAt time.Time
}
