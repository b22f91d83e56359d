package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seatplan/pkg/plan"
)

var (
	roomStyle  = lipgloss.NewStyle().Bold(true)
	countStyle = lipgloss.NewStyle().Faint(true)
)

// chairString shows each chair slot as ● when present and ○ when removed.
func chairString(t plan.Table) string {
	var b strings.Builder
	for _, c := range t.Chairs {
		if c {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
	}
	return b.String()
}

// writeInspect prints the room tree with every table and a seat total.
func writeInspect(w io.Writer, l plan.Layout) error {
	var b strings.Builder
	total, rooms := 0, 0
	l.Walk(func(r plan.Room, depth int) bool {
		rooms++
		indent := strings.Repeat("  ", depth)
		seats := 0
		for _, t := range r.Tables {
			seats += t.Occupied()
		}
		total += seats

		fmt.Fprintf(&b, "%s%s %s\n", indent,
			roomStyle.Render(r.Name),
			countStyle.Render(fmt.Sprintf("#%d, %d walls, %d tables, %d seats", r.ID, len(r.Walls), len(r.Tables), seats)))
		for _, t := range r.Tables {
			fmt.Fprintf(&b, "%s  - %-7s (%g,%g) %s\n", indent, t.Type, t.X, t.Y, chairString(t))
		}
		return true
	})
	fmt.Fprintf(&b, "%d rooms, %d tables, %d seats\n", rooms, len(l.Tables()), total)

	_, err := io.WriteString(w, b.String())
	return err
}
