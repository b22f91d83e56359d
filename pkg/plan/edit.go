package plan

import (
	"fmt"
	"math"
	"strings"

	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
)

// WallHitDistance is how close a click must land to a wall to erase it.
const WallHitDistance = 5

// AddWall appends w to the root room. Crossings with existing walls are
// allowed.
func (l Layout) AddWall(w Wall) (Layout, error) {
	next := l.Clone()
	ri := next.rootIndex()
	if ri < 0 {
		return l, errNoRoot()
	}
	next[ri].Walls = append(next[ri].Walls, w)
	return next, nil
}

// DeleteWallsAt removes, in every room of the tree, each wall within
// threshold of p, and reports how many went. A room left without walls is
// dropped and its tables, including those of its sub-rooms, move up to its
// parent. The root is never dropped.
func (l Layout) DeleteWallsAt(p geom.Point, threshold float64) (Layout, int) {
	next := l.Clone()
	removed := 0

	var strip func(r *Room)
	strip = func(r *Room) {
		walls := r.Walls[:0]
		for _, w := range r.Walls {
			if w.DistanceTo(p) <= threshold {
				removed++
				continue
			}
			walls = append(walls, w)
		}
		r.Walls = walls

		subs := r.SubRooms[:0]
		for _, sub := range r.SubRooms {
			strip(&sub)
			if len(sub.Walls) == 0 {
				r.Tables = append(r.Tables, sub.AllTables()...)
				continue
			}
			subs = append(subs, sub)
		}
		r.SubRooms = subs
	}

	for i := range next {
		strip(&next[i])
	}

	root := next.rootIndex()
	var orphans []Table
	kept := make(Layout, 0, len(next))
	for i, r := range next {
		if i != root && !r.IsTemporary && len(r.Walls) == 0 {
			orphans = append(orphans, r.AllTables()...)
			continue
		}
		kept = append(kept, r)
	}
	if ri := kept.rootIndex(); ri >= 0 && len(orphans) > 0 {
		kept[ri].Tables = append(kept[ri].Tables, orphans...)
	}
	return kept, removed
}

// AddTable places t in the innermost room whose polygon contains it.
func (l Layout) AddTable(t Table) (Layout, error) {
	next := l.Clone()
	at, ok := next.roomPathAt(t.Pos())
	if !ok {
		return l, errNoRoot()
	}
	r := next.at(at)
	r.Tables = append(r.Tables, t.clone())
	return next, nil
}

// RemoveTable deletes the table centered exactly at p.
func (l Layout) RemoveTable(p geom.Point) (Layout, error) {
	next := l.Clone()
	if _, ok := next.takeTable(p); !ok {
		return l, errNoTableAt(p)
	}
	return next, nil
}

// MoveTable relocates the table at from to the point to, re-resolving which
// room owns it. A move onto another table's position is refused.
func (l Layout) MoveTable(from, to geom.Point) (Layout, error) {
	if _, _, ok := l.findTable(at(from)); !ok {
		return l, errNoTableAt(from)
	}
	if from.Eq(to) {
		return l.Clone(), nil
	}
	if _, _, ok := l.findTable(at(to)); ok {
		return l, errors.New(errors.ErrCodeOccupied, "table already exists at destination")
	}

	next := l.Clone()
	t, _ := next.takeTable(from)
	t.X, t.Y = to.X, to.Y
	dest, ok := next.roomPathAt(to)
	if !ok {
		return l, errNoRoot()
	}
	r := next.at(dest)
	r.Tables = append(r.Tables, t)
	return next, nil
}

// ChairSlot picks the slot of a square or diamond table a click refers to.
// The dominant axis of the offset from click to center decides; ties go to
// the horizontal slots.
func ChairSlot(center, click geom.Point) int {
	dx := center.X - click.X
	dy := center.Y - click.Y
	if math.Abs(dy) > math.Abs(dx) {
		if dy > 0 {
			return SlotTop
		}
		return SlotBottom
	}
	if dx < 0 {
		return SlotRight
	}
	return SlotLeft
}

// ToggleChair flips the chair of the table at p that click points to and
// returns the slot it changed.
func (l Layout) ToggleChair(p, click geom.Point) (Layout, int, error) {
	next := l.Clone()
	t, ok := next.tableRef(p)
	if !ok {
		return l, 0, errNoTableAt(p)
	}
	if !t.Type.Fixed() {
		return l, 0, errors.New(errors.ErrCodeInvalidInput, "round tables take a seat count")
	}
	for len(t.Chairs) < fixedChairs {
		t.Chairs = append(t.Chairs, true)
	}
	slot := ChairSlot(t.Pos(), click)
	t.Chairs[slot] = !t.Chairs[slot]
	return next, slot, nil
}

// ResizeChairs gives the round table at p n occupied chairs, n clamped to
// [MinRoundChairs, MaxRoundChairs]. It returns the count applied.
func (l Layout) ResizeChairs(p geom.Point, n int) (Layout, int, error) {
	next := l.Clone()
	t, ok := next.tableRef(p)
	if !ok {
		return l, 0, errNoTableAt(p)
	}
	if t.Type.Fixed() {
		return l, 0, errors.New(errors.ErrCodeInvalidInput, "only round tables take a seat count")
	}
	n = clampSeats(n)
	t.Chairs = occupied(n)
	return next, n, nil
}

// MergeTables joins the tables at a and b into one round table on the grid
// point nearest their midpoint, seating as many as both did (within the
// round-table limits).
func (l Layout) MergeTables(a, b geom.Point, unit float64) (Layout, Table, error) {
	if a.Eq(b) {
		return l, Table{}, errors.New(errors.ErrCodeInvalidInput, "pick a second table to merge with")
	}
	next := l.Clone()
	ta, ok := next.takeTable(a)
	if !ok {
		return l, Table{}, errNoTableAt(a)
	}
	tb, ok := next.takeTable(b)
	if !ok {
		return l, Table{}, errNoTableAt(b)
	}

	mid := geom.Snap(geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2), unit)
	if _, _, taken := next.findTable(at(mid)); taken {
		return l, Table{}, errors.New(errors.ErrCodeOccupied, "table already exists at destination")
	}
	merged := Table{
		X:      mid.X,
		Y:      mid.Y,
		Type:   Round,
		Chairs: occupied(clampSeats(ta.Occupied() + tb.Occupied())),
	}
	dest, ok := next.roomPathAt(mid)
	if !ok {
		return l, Table{}, errNoRoot()
	}
	r := next.at(dest)
	r.Tables = append(r.Tables, merged.clone())
	return next, merged, nil
}

// CreateRoom closes points into a new sub-room of the root. Root tables
// inside the polygon move into it; the rest stay. An empty name becomes
// "Room <id>".
func (l Layout) CreateRoom(points []geom.Point, name string) (Layout, Room, error) {
	if len(points) < 3 {
		return l, Room{}, errors.New(errors.ErrCodeTooFewPoints, "a room needs at least 3 points")
	}
	next := l.Clone()
	ri := next.rootIndex()
	if ri < 0 {
		return l, Room{}, errNoRoot()
	}

	id := next.NextID()
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Room %d", id)
	}
	room := NewRoom(id, name, points)

	root := &next[ri]
	outside := make([]Table, 0, len(root.Tables))
	for _, t := range root.Tables {
		if geom.InPolygon(t.Pos(), points) {
			room.Tables = append(room.Tables, t)
		} else {
			outside = append(outside, t)
		}
	}
	root.Tables = outside
	root.SubRooms = append(root.SubRooms, room)
	return next, room.Clone(), nil
}

// DeleteRoom removes the room with the given ID together with its
// sub-rooms. Its own tables and those of every descendant move to its
// parent.
func (l Layout) DeleteRoom(id int) (Layout, error) {
	p, ok := l.locate(id)
	if !ok {
		return l, errRoomNotFound(id)
	}
	if id == RootID || (len(p) == 1 && p[0] == l.rootIndex()) {
		return l, errors.New(errors.ErrCodeForbidden, "the main room cannot be deleted")
	}

	next := l.Clone()
	i := p[len(p)-1]
	if len(p) == 1 {
		tables := next[i].AllTables()
		next = append(next[:i:i], next[i+1:]...)
		ri := next.rootIndex()
		next[ri].Tables = append(next[ri].Tables, tables...)
		return next, nil
	}

	parent := next.at(p[:len(p)-1])
	victim := parent.SubRooms[i]
	parent.Tables = append(parent.Tables, victim.AllTables()...)
	parent.SubRooms = append(parent.SubRooms[:i:i], parent.SubRooms[i+1:]...)
	return next, nil
}

// RenameRoom sets the display name of a room. Names are trimmed and must not
// end up empty.
func (l Layout) RenameRoom(id int, name string) (Layout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, errors.New(errors.ErrCodeInvalidInput, "room name cannot be empty")
	}
	if id == RootID {
		return l, errors.New(errors.ErrCodeForbidden, "the main room cannot be renamed")
	}
	p, ok := l.locate(id)
	if !ok {
		return l, errRoomNotFound(id)
	}
	next := l.Clone()
	next.at(p).Name = name
	return next, nil
}

// takeTable removes the table at p from l, which must be a private clone.
func (l Layout) takeTable(p geom.Point) (Table, bool) {
	ref, j, ok := l.findTable(at(p))
	if !ok {
		return Table{}, false
	}
	r := l.at(ref)
	t := r.Tables[j]
	r.Tables = append(r.Tables[:j:j], r.Tables[j+1:]...)
	return t, true
}

// tableRef points at the table at p inside l, which must be a private clone.
func (l Layout) tableRef(p geom.Point) (*Table, bool) {
	ref, j, ok := l.findTable(at(p))
	if !ok {
		return nil, false
	}
	return &l.at(ref).Tables[j], true
}

func at(p geom.Point) func(Table) bool {
	return func(t Table) bool { return t.Pos().Eq(p) }
}

func errNoTableAt(p geom.Point) error {
	return errors.New(errors.ErrCodeNoTable, "no table at (%g, %g)", p.X, p.Y)
}

func errRoomNotFound(id int) error {
	return errors.New(errors.ErrCodeNotFound, "room %d not found", id)
}

func errNoRoot() error {
	return errors.New(errors.ErrCodeNotFound, "the plan has no main room; reset to start over")
}
