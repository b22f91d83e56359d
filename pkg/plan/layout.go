package plan

import (
	"math"

	"seatplan/pkg/geom"
)

const rootName = "Main room"

// Layout is the top-level room list. In a fresh plan it holds just the root;
// imported files may carry more.
type Layout []Room

// NewLayout returns a plan holding only the root room, framed by four walls
// around a width x height canvas.
func NewLayout(width, height float64) Layout {
	root := NewRoom(RootID, rootName, []geom.Point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	})
	return Layout{root}
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for i, r := range l {
		out[i] = r.Clone()
	}
	return out
}

// path addresses a room by child indexes from the top-level list.
type path []int

// rootIndex is the top-level room every orphaned table falls back to: the
// room with RootID, else the first permanent one.
func (l Layout) rootIndex() int {
	first := -1
	for i, r := range l {
		if r.IsTemporary {
			continue
		}
		if r.ID == RootID {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// at resolves p to a room pointer inside l. l must be a private clone.
func (l Layout) at(p path) *Room {
	r := &l[p[0]]
	for _, i := range p[1:] {
		r = &r.SubRooms[i]
	}
	return r
}

func (l Layout) locate(id int) (path, bool) {
	var search func(rooms []Room, prefix path) (path, bool)
	search = func(rooms []Room, prefix path) (path, bool) {
		for i, r := range rooms {
			p := append(append(path{}, prefix...), i)
			if r.ID == id && !r.IsTemporary {
				return p, true
			}
			if found, ok := search(r.SubRooms, p); ok {
				return found, true
			}
		}
		return nil, false
	}
	return search(l, nil)
}

// Find returns the room with the given ID anywhere in the tree.
func (l Layout) Find(id int) (Room, bool) {
	p, ok := l.locate(id)
	if !ok {
		return Room{}, false
	}
	return *l.at(p), true
}

// Root returns the main room.
func (l Layout) Root() (Room, bool) {
	i := l.rootIndex()
	if i < 0 {
		return Room{}, false
	}
	return l[i], true
}

// roomPathAt resolves the innermost permanent room whose polygon contains p.
// The root is the catch-all for points no room encloses.
func (l Layout) roomPathAt(p geom.Point) (path, bool) {
	var descend func(r Room, at path) path
	descend = func(r Room, at path) path {
		for i, sub := range r.SubRooms {
			if !sub.IsTemporary && sub.Contains(p) {
				return descend(sub, append(append(path{}, at...), i))
			}
		}
		return at
	}

	root := l.rootIndex()
	if root < 0 {
		return nil, false
	}
	if !l[root].Contains(p) {
		for i, r := range l {
			if i != root && !r.IsTemporary && r.Contains(p) {
				return descend(r, path{i}), true
			}
		}
	}
	return descend(l[root], path{root}), true
}

// RoomAt returns the ID of the innermost room containing p.
func (l Layout) RoomAt(p geom.Point) (int, bool) {
	at, ok := l.roomPathAt(p)
	if !ok {
		return 0, false
	}
	return l.at(at).ID, true
}

// Walk visits every permanent room depth first. Returning false from fn
// skips that room's children.
func (l Layout) Walk(fn func(r Room, depth int) bool) {
	var walk func(rooms []Room, depth int)
	walk = func(rooms []Room, depth int) {
		for _, r := range rooms {
			if r.IsTemporary {
				continue
			}
			if fn(r, depth) {
				walk(r.SubRooms, depth+1)
			}
		}
	}
	walk(l, 0)
}

// Count is the number of permanent rooms in the tree, root included.
func (l Layout) Count() int {
	n := 0
	l.Walk(func(Room, int) bool { n++; return true })
	return n
}

// NextID is the ID for a new room. With dense IDs this equals Count; after
// deletions it stays above every ID still in use.
func (l Layout) NextID() int {
	next := l.Count()
	l.Walk(func(r Room, _ int) bool {
		if r.ID >= next {
			next = r.ID + 1
		}
		return true
	})
	return next
}

// Entry is one line of the room listing.
type Entry struct {
	ID     int
	Name   string
	Depth  int
	Tables int
}

// Listing flattens the tree for display, temporary rooms excluded.
func (l Layout) Listing() []Entry {
	var out []Entry
	l.Walk(func(r Room, depth int) bool {
		out = append(out, Entry{ID: r.ID, Name: r.Name, Depth: depth, Tables: len(r.Tables)})
		return true
	})
	return out
}

// Tables returns every table in the tree with the ID of the room owning it.
func (l Layout) Tables() []PlacedTable {
	var out []PlacedTable
	l.Walk(func(r Room, _ int) bool {
		for _, t := range r.Tables {
			out = append(out, PlacedTable{Table: t, RoomID: r.ID})
		}
		return true
	})
	return out
}

type PlacedTable struct {
	Table
	RoomID int
}

func (l Layout) findTable(match func(Table) bool) (path, int, bool) {
	var search func(rooms []Room, prefix path) (path, int, bool)
	search = func(rooms []Room, prefix path) (path, int, bool) {
		for i, r := range rooms {
			if r.IsTemporary {
				continue
			}
			p := append(append(path{}, prefix...), i)
			for j, t := range r.Tables {
				if match(t) {
					return p, j, true
				}
			}
			if found, j, ok := search(r.SubRooms, p); ok {
				return found, j, true
			}
		}
		return nil, 0, false
	}
	return search(l, nil)
}

// TableAt returns the table whose square of side 2*half, centered on the
// table, contains p. Overlapping hits resolve to the closest center.
func (l Layout) TableAt(p geom.Point, half float64) (Table, bool) {
	var best Table
	found := false
	for _, pt := range l.Tables() {
		d := pt.Pos().Sub(p)
		if math.Abs(d.X) > half || math.Abs(d.Y) > half {
			continue
		}
		if !found || pt.Pos().Dist(p) < best.Pos().Dist(p) {
			best, found = pt.Table, true
		}
	}
	return best, found
}

// TableNear reports whether any table lies strictly within reach of p on
// both axes.
func (l Layout) TableNear(p geom.Point, reach float64) bool {
	for _, pt := range l.Tables() {
		d := pt.Pos().Sub(p)
		if math.Abs(d.X) < reach && math.Abs(d.Y) < reach {
			return true
		}
	}
	return false
}
