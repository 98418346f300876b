package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"hostel-registry/config"
	"hostel-registry/internal/model"
	"hostel-registry/internal/parse"
	"hostel-registry/internal/store"
)

// Registry owns the room assignments and the waiting list of one hostel.
type Registry struct {
	store      store.Store
	totalRooms int
	enforce    bool
	now        func() time.Time
	newTicket  func() string
}

// Snapshot is a read view of the registry for display.
type Snapshot struct {
	TotalRooms int
	Occupants  []model.Occupancy // ascending by room
	Waiting    []model.WaitEntry // FIFO
}

// Admission reports where Admit placed a resident.
type Admission struct {
	Room     string
	Assigned bool
	Entry    model.WaitEntry // set when the resident was queued
}

// New creates a Registry over s.
func New(cfg *config.RegistryConfig, s store.Store) *Registry {
	return &Registry{
		store:      s,
		totalRooms: cfg.TotalRooms,
		enforce:    cfg.CapacityPolicy == config.CapacityEnforce,
		now:        func() time.Time { return time.Now().UTC() },
		newTicket:  uuid.NewString,
	}
}

// TotalRooms returns the configured capacity.
func (r *Registry) TotalRooms() int {
	return r.totalRooms
}

// SearchByRoom looks up the occupant of room.
func (r *Registry) SearchByRoom(ctx context.Context, room string) (model.Resident, bool, error) {
	occ, found, err := r.store.GetRoom(ctx, room)
	if err != nil {
		return model.Resident{}, false, err
	}
	return occ.Resident, found, nil
}

// IsRoomAvailable reports whether room has no occupant.
func (r *Registry) IsRoomAvailable(ctx context.Context, room string) (bool, error) {
	_, found, err := r.store.GetRoom(ctx, room)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// OccupancyRate returns the percentage of capacity in use. A hostel with no
// configured rooms reports 0.
func (r *Registry) OccupancyRate(ctx context.Context) (float64, error) {
	if r.totalRooms <= 0 {
		return 0, nil
	}
	n, err := r.store.CountRooms(ctx)
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(r.totalRooms) * 100, nil
}

// Occupants returns every occupied room in natural room order.
func (r *Registry) Occupants(ctx context.Context) ([]model.Occupancy, error) {
	list, err := r.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b model.Occupancy) int {
		return parse.CompareRooms(a.Room, b.Room)
	})
	return list, nil
}

// WaitingList returns the waiting residents, head first.
func (r *Registry) WaitingList(ctx context.Context) ([]model.WaitEntry, error) {
	return r.store.ListWaiting(ctx)
}

// Snapshot collects everything DisplayAll shows.
func (r *Registry) Snapshot(ctx context.Context) (Snapshot, error) {
	occupants, err := r.Occupants(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	waiting, err := r.WaitingList(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{TotalRooms: r.totalRooms, Occupants: occupants, Waiting: waiting}, nil
}

// Assign checks resident into room.
func (r *Registry) Assign(ctx context.Context, room string, resident model.Resident) error {
	if err := r.checkCapacity(ctx); err != nil {
		return err
	}
	if err := r.insert(ctx, room, resident); err != nil {
		return err
	}
	log.Printf("Assigned %s to room %s", resident.StudentID, room)
	return nil
}

// Admit assigns resident to room, or queues the resident when the hostel is
// full under the enforce policy.
func (r *Registry) Admit(ctx context.Context, room string, resident model.Resident) (Admission, error) {
	err := r.Assign(ctx, room, resident)
	if err == nil {
		return Admission{Room: room, Assigned: true}, nil
	}
	if !errors.Is(err, ErrCapacityReached) {
		return Admission{}, err
	}

	entry, err := r.Enqueue(ctx, resident)
	if err != nil {
		return Admission{}, err
	}
	return Admission{Room: room, Entry: entry}, nil
}

// Vacate checks the occupant out of room.
func (r *Registry) Vacate(ctx context.Context, room string) (model.Resident, error) {
	occ, found, err := r.store.DeleteRoom(ctx, room)
	if err != nil {
		return model.Resident{}, err
	}
	if !found {
		return model.Resident{}, fmt.Errorf("vacate %s: %w", room, ErrRoomNotFound)
	}
	log.Printf("Vacated room %s (%s)", room, occ.Resident.StudentID)
	return occ.Resident, nil
}

// Enqueue appends resident to the tail of the waiting list.
func (r *Registry) Enqueue(ctx context.Context, resident model.Resident) (model.WaitEntry, error) {
	entry := model.WaitEntry{
		Ticket:     r.newTicket(),
		Resident:   resident,
		EnqueuedAt: r.now(),
	}
	if err := r.store.PushWaiting(ctx, entry); err != nil {
		return model.WaitEntry{}, err
	}
	log.Printf("Queued %s with ticket %s", resident.StudentID, entry.Ticket)
	return entry, nil
}

// Dequeue removes and returns the head of the waiting list.
func (r *Registry) Dequeue(ctx context.Context) (model.WaitEntry, error) {
	head, found, err := r.store.PeekWaiting(ctx)
	if err != nil {
		return model.WaitEntry{}, err
	}
	if !found {
		return model.WaitEntry{}, ErrWaitlistEmpty
	}
	if _, _, err := r.store.RemoveWaiting(ctx, head.Ticket); err != nil {
		return model.WaitEntry{}, err
	}
	return head, nil
}

// Promote moves the head of the waiting list into room. The head keeps its
// place if the room cannot take it.
func (r *Registry) Promote(ctx context.Context, room string) (model.WaitEntry, error) {
	head, found, err := r.store.PeekWaiting(ctx)
	if err != nil {
		return model.WaitEntry{}, err
	}
	if !found {
		return model.WaitEntry{}, ErrWaitlistEmpty
	}

	if err := r.checkCapacity(ctx); err != nil {
		return model.WaitEntry{}, err
	}
	if err := r.insert(ctx, room, head.Resident); err != nil {
		return model.WaitEntry{}, err
	}
	if _, _, err := r.store.RemoveWaiting(ctx, head.Ticket); err != nil {
		return model.WaitEntry{}, err
	}
	log.Printf("Promoted %s from the waiting list to room %s", head.Resident.StudentID, room)
	return head, nil
}

// Withdraw removes the waiting entry with the given ticket.
func (r *Registry) Withdraw(ctx context.Context, ticket string) (model.WaitEntry, error) {
	entry, found, err := r.store.RemoveWaiting(ctx, ticket)
	if err != nil {
		return model.WaitEntry{}, err
	}
	if !found {
		return model.WaitEntry{}, fmt.Errorf("withdraw %s: %w", ticket, ErrTicketNotFound)
	}
	return entry, nil
}

func (r *Registry) checkCapacity(ctx context.Context) error {
	if !r.enforce {
		return nil
	}
	n, err := r.store.CountRooms(ctx)
	if err != nil {
		return err
	}
	if n >= r.totalRooms {
		return ErrCapacityReached
	}
	return nil
}

func (r *Registry) insert(ctx context.Context, room string, resident model.Resident) error {
	err := r.store.InsertRoom(ctx, model.Occupancy{Room: room, Resident: resident, AssignedAt: r.now()})
	if errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("room %s: %w", room, ErrRoomOccupied)
	}
	return err
}
