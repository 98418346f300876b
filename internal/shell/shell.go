// Package shell implements the line-oriented operator console.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"hostel-registry/internal/model"
	"hostel-registry/internal/registry"
	"hostel-registry/internal/render"
)

const prompt = "hostel> "

const usage = `Commands:
  assign <room> <student_id> <contact> <name...>   check a resident into a room
  admit <room> <student_id> <contact> <name...>    assign, or queue when the hostel is full
  enqueue <student_id> <contact> <name...>         add a resident to the waiting list
  vacate <room>                                    check the occupant out
  dequeue                                          remove the head of the waiting list
  promote <room>                                   move the head of the waiting list into a room
  withdraw <ticket>                                remove a waiting entry by ticket
  search <room>                                    look up a room's occupant
  available <room>                                 check whether a room is free
  occupancy                                        show the occupancy rate
  show                                             show all residents and the waiting list
  waitlist                                         show the waiting list
  export                                           print the residents as JSON
  help                                             show this help
  quit                                             leave the console
`

var errQuit = errors.New("quit")

// errUsage marks a malformed or unknown command line.
type errUsage string

func (e errUsage) Error() string { return string(e) }

// domainErrors are reported to the operator; anything else ends the session.
var domainErrors = []error{
	registry.ErrRoomOccupied,
	registry.ErrRoomNotFound,
	registry.ErrCapacityReached,
	registry.ErrWaitlistEmpty,
	registry.ErrTicketNotFound,
}

// Shell reads commands from in and writes results to out.
type Shell struct {
	reg *registry.Registry
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Shell over reg.
func New(reg *registry.Registry, in io.Reader, out io.Writer) *Shell {
	return &Shell{reg: reg, in: bufio.NewScanner(in), out: out}
}

// Run processes commands until quit, end of input, a store failure or
// cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.Exec(ctx, s.in.Text())
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case isReportable(err):
			fmt.Fprintf(s.out, "Error: %v\n", err)
		default:
			return err
		}
	}
}

func isReportable(err error) bool {
	var u errUsage
	if errors.As(err, &u) {
		return true
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "assign", "admit":
		if len(args) < 4 {
			return errUsage("usage: " + cmd + " <room> <student_id> <contact> <name...>")
		}
		resident := model.NewResident(strings.Join(args[3:], " "), args[1], args[2])
		if cmd == "assign" {
			if err := s.reg.Assign(ctx, args[0], resident); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "✓ %s assigned to Room %s\n", resident.Name, args[0])
			return nil
		}
		adm, err := s.reg.Admit(ctx, args[0], resident)
		if err != nil {
			return err
		}
		if adm.Assigned {
			fmt.Fprintf(s.out, "✓ %s assigned to Room %s\n", resident.Name, adm.Room)
		} else {
			fmt.Fprintf(s.out, "Hostel is full; %s added to the waiting list (ticket %s)\n", resident.Name, adm.Entry.Ticket)
		}
		return nil

	case "enqueue":
		if len(args) < 3 {
			return errUsage("usage: enqueue <student_id> <contact> <name...>")
		}
		resident := model.NewResident(strings.Join(args[2:], " "), args[0], args[1])
		entry, err := s.reg.Enqueue(ctx, resident)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✓ %s added to the waiting list (ticket %s)\n", resident.Name, entry.Ticket)
		return nil

	case "vacate":
		if len(args) != 1 {
			return errUsage("usage: vacate <room>")
		}
		resident, err := s.reg.Vacate(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✓ %s checked out of Room %s\n", resident.Name, args[0])
		return nil

	case "dequeue":
		entry, err := s.reg.Dequeue(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✓ %s removed from the waiting list\n", entry.Resident.Name)
		return nil

	case "promote":
		if len(args) != 1 {
			return errUsage("usage: promote <room>")
		}
		entry, err := s.reg.Promote(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✓ %s promoted to Room %s\n", entry.Resident.Name, args[0])
		return nil

	case "withdraw":
		if len(args) != 1 {
			return errUsage("usage: withdraw <ticket>")
		}
		entry, err := s.reg.Withdraw(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✓ %s withdrawn from the waiting list\n", entry.Resident.Name)
		return nil

	case "search":
		if len(args) != 1 {
			return errUsage("usage: search <room>")
		}
		resident, found, err := s.reg.SearchByRoom(ctx, args[0])
		if err != nil {
			return err
		}
		return render.SearchResult(s.out, args[0], resident, found)

	case "available":
		if len(args) != 1 {
			return errUsage("usage: available <room>")
		}
		available, err := s.reg.IsRoomAvailable(ctx, args[0])
		if err != nil {
			return err
		}
		if available {
			fmt.Fprintf(s.out, "Room %s is available\n", args[0])
		} else {
			fmt.Fprintf(s.out, "Room %s is occupied\n", args[0])
		}
		return nil

	case "occupancy":
		rate, err := s.reg.OccupancyRate(ctx)
		if err != nil {
			return err
		}
		return render.OccupancyRate(s.out, rate)

	case "show":
		snap, err := s.reg.Snapshot(ctx)
		if err != nil {
			return err
		}
		return render.DisplayAll(s.out, snap)

	case "waitlist":
		entries, err := s.reg.WaitingList(ctx)
		if err != nil {
			return err
		}
		return render.WaitingList(s.out, entries)

	case "export":
		return s.export(ctx)

	case "help":
		_, err := io.WriteString(s.out, usage)
		return err

	case "quit", "exit":
		return errQuit
	}

	return errUsage(fmt.Sprintf("unknown command %q, try help", cmd))
}

type exportedRoom struct {
	Room     string            `json:"room"`
	Resident map[string]string `json:"resident"`
}

func (s *Shell) export(ctx context.Context) error {
	occupants, err := s.reg.Occupants(ctx)
	if err != nil {
		return err
	}
	rows := make([]exportedRoom, len(occupants))
	for i, occ := range occupants {
		rows[i] = exportedRoom{Room: occ.Room, Resident: occ.Resident.ToSerializable()}
	}

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
