package registry

import "errors"

var (
	// ErrRoomOccupied is returned when assigning or promoting into a taken room.
	ErrRoomOccupied = errors.New("room is already occupied")
	// ErrRoomNotFound is returned when vacating a room that has no occupant.
	ErrRoomNotFound = errors.New("room has no occupant")
	// ErrCapacityReached is returned under the enforce policy when every room is taken.
	ErrCapacityReached = errors.New("hostel is at capacity")
	// ErrWaitlistEmpty is returned when dequeuing or promoting from an empty waiting list.
	ErrWaitlistEmpty = errors.New("waiting list is empty")
	// ErrTicketNotFound is returned when withdrawing an unknown ticket.
	ErrTicketNotFound = errors.New("ticket not found in waiting list")
)
