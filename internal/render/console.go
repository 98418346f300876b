// Package render formats registry state as the console text blocks of the
// hostel manager.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"hostel-registry/internal/model"
	"hostel-registry/internal/registry"
)

const width = 60

var (
	doubleRule = strings.Repeat("=", width)
	singleRule = strings.Repeat("-", width)
)

// DisplayAll writes the current residents followed by the waiting list.
func DisplayAll(w io.Writer, snap registry.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", doubleRule)
	fmt.Fprintln(&b, center("CURRENT HOSTEL RESIDENTS", width))
	fmt.Fprintln(&b, doubleRule)

	if len(snap.Occupants) == 0 {
		fmt.Fprintln(&b, "No residents currently checked in.")
	} else {
		fmt.Fprintf(&b, "Total Occupied Rooms: %d/%d\n\n", len(snap.Occupants), snap.TotalRooms)
		for _, occ := range snap.Occupants {
			fmt.Fprintf(&b, "Room %s: %s\n", occ.Room, occ.Resident)
		}
	}
	fmt.Fprintln(&b, doubleRule)

	writeWaitingList(&b, snap.Waiting)

	_, err := io.WriteString(w, b.String())
	return err
}

// WaitingList writes the waiting list with 1-based positions.
func WaitingList(w io.Writer, entries []model.WaitEntry) error {
	var b strings.Builder
	writeWaitingList(&b, entries)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeWaitingList(b *strings.Builder, entries []model.WaitEntry) {
	fmt.Fprintf(b, "\n%s\n", singleRule)
	fmt.Fprintln(b, center("WAITING LIST (Queue - FIFO)", width))
	fmt.Fprintln(b, singleRule)

	if len(entries) == 0 {
		fmt.Fprintln(b, "Waiting list is empty.")
	} else {
		fmt.Fprintf(b, "Total in Queue: %d\n\n", len(entries))
		for i, e := range entries {
			fmt.Fprintf(b, "Position %d: %s\n", i+1, e.Resident)
		}
	}
	fmt.Fprintln(b, singleRule)
}

// SearchResult writes the outcome of a room lookup.
func SearchResult(w io.Writer, room string, resident model.Resident, found bool) error {
	var err error
	if found {
		_, err = fmt.Fprintf(w, "\n✓ Resident found in Room %s:\n  %s\n", room, resident)
	} else {
		_, err = fmt.Fprintf(w, "\n✗ No resident found in Room %s\n", room)
	}
	return err
}

// OccupancyRate writes the occupancy percentage with one decimal.
func OccupancyRate(w io.Writer, rate float64) error {
	_, err := fmt.Fprintf(w, "\nCurrent Occupancy Rate: %.1f%%\n", rate)
	return err
}

// Banner writes a title between two double rules.
func Banner(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n", doubleRule, title, doubleRule)
	return err
}

// center pads s with spaces to n runes. An odd margin puts the extra space
// on the right unless both the margin and n are odd.
func center(s string, n int) string {
	marg := n - utf8.RuneCountInString(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & n & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}
