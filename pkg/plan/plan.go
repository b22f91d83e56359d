// Package plan is the floor-plan model: a tree of rooms, each bounded by
// walls and owning tables and nested sub-rooms.
//
// A Layout is a value. Every editing operation returns a new Layout and
// leaves the receiver untouched, so a renderer holding an older Layout never
// observes a half-applied edit.
package plan

import (
	"fmt"
	"math"

	"seatplan/pkg/geom"
)

// RootID is reserved for the main room that frames the whole canvas.
const RootID = 0

// PreviewID is carried by the temporary room shown while a polygon is drawn.
const PreviewID = -1

const (
	MinRoundChairs = 2
	MaxRoundChairs = 8

	defaultRoundChairs = 6
	fixedChairs        = 4
)

// Chair slots of square and diamond tables.
const (
	SlotTop = iota
	SlotRight
	SlotBottom
	SlotLeft
)

type TableType string

const (
	Square  TableType = "square"
	Diamond TableType = "diamond"
	Round   TableType = "round"
)

// TableTypes lists the shapes in picker order.
var TableTypes = []TableType{Square, Diamond, Round}

// Fixed reports whether the shape has the four positional chair slots.
// Unknown shapes from imported files behave like squares.
func (t TableType) Fixed() bool { return t != Round }

func (t TableType) String() string {
	if t == "" {
		return string(Square)
	}
	return string(t)
}

// ParseTableType accepts the three persisted names.
func ParseTableType(s string) (TableType, error) {
	for _, t := range TableTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table type %q", s)
}

// Wall is a segment persisted as [x1, y1, x2, y2].
type Wall [4]float64

func NewWall(a, b geom.Point) Wall { return Wall{a.X, a.Y, b.X, b.Y} }

func (w Wall) Start() geom.Point { return geom.Point{X: w[0], Y: w[1]} }
func (w Wall) End() geom.Point   { return geom.Point{X: w[2], Y: w[3]} }

// DistanceTo is the distance from p to the wall segment.
func (w Wall) DistanceTo(p geom.Point) float64 {
	return geom.SegmentDistance(p, w.Start(), w.End())
}

type Table struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Type   TableType `json:"type"`
	Chairs []bool    `json:"chairs"`
}

// NewTable builds a table with every chair occupied: four for square and
// diamond tables, six for round ones.
func NewTable(at geom.Point, t TableType) Table {
	n := fixedChairs
	if !t.Fixed() {
		n = defaultRoundChairs
	}
	return Table{X: at.X, Y: at.Y, Type: t, Chairs: occupied(n)}
}

func (t Table) Pos() geom.Point { return geom.Point{X: t.X, Y: t.Y} }

// Occupied counts the chairs that are present.
func (t Table) Occupied() int {
	n := 0
	for _, c := range t.Chairs {
		if c {
			n++
		}
	}
	return n
}

// ChairPositions places each chair reach away from the table center: on the
// four sides of square and diamond tables, evenly around round ones starting
// at the top.
func (t Table) ChairPositions(reach float64) []geom.Point {
	c := t.Pos()
	if t.Type.Fixed() {
		sides := []geom.Point{
			SlotTop:    {X: c.X, Y: c.Y - reach},
			SlotRight:  {X: c.X + reach, Y: c.Y},
			SlotBottom: {X: c.X, Y: c.Y + reach},
			SlotLeft:   {X: c.X - reach, Y: c.Y},
		}
		return sides[:min(len(t.Chairs), len(sides))]
	}

	out := make([]geom.Point, len(t.Chairs))
	for i := range out {
		a := 2*math.Pi*float64(i)/float64(len(out)) - math.Pi/2
		out[i] = geom.Point{X: c.X + reach*math.Cos(a), Y: c.Y + reach*math.Sin(a)}
	}
	return out
}

func (t Table) clone() Table {
	t.Chairs = append([]bool{}, t.Chairs...)
	return t
}

type Room struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Walls       []Wall  `json:"walls"`
	Tables      []Table `json:"tables"`
	SubRooms    []Room  `json:"subRooms"`
	IsTemporary bool    `json:"isTemporary"`
}

// NewRoom closes the point sequence into walls: each point connects to the
// next and the last wraps around to the first.
func NewRoom(id int, name string, points []geom.Point) Room {
	walls := make([]Wall, len(points))
	for i, p := range points {
		walls[i] = NewWall(p, points[(i+1)%len(points)])
	}
	return Room{
		ID:       id,
		Name:     name,
		Walls:    walls,
		Tables:   []Table{},
		SubRooms: []Room{},
	}
}

// NewPreview is the temporary room drawn while a polygon is being collected.
func NewPreview(points []geom.Point) Room {
	r := NewRoom(PreviewID, "", points)
	r.IsTemporary = true
	return r
}

// Polygon takes each wall's first endpoint as a vertex.
func (r Room) Polygon() []geom.Point {
	pts := make([]geom.Point, len(r.Walls))
	for i, w := range r.Walls {
		pts[i] = w.Start()
	}
	return pts
}

// Contains reports whether p lies inside the room's wall polygon. Rooms with
// fewer than three walls enclose nothing.
func (r Room) Contains(p geom.Point) bool {
	if len(r.Walls) < 3 {
		return false
	}
	return geom.InPolygon(p, r.Polygon())
}

// AllTables returns the room's own tables followed by those of every
// descendant, depth first.
func (r Room) AllTables() []Table {
	out := append([]Table{}, r.Tables...)
	for _, sub := range r.SubRooms {
		out = append(out, sub.AllTables()...)
	}
	return out
}

// Clone returns a deep copy.
func (r Room) Clone() Room {
	c := r
	c.Walls = append([]Wall{}, r.Walls...)
	c.Tables = make([]Table, len(r.Tables))
	for i, t := range r.Tables {
		c.Tables[i] = t.clone()
	}
	c.SubRooms = make([]Room, len(r.SubRooms))
	for i, sub := range r.SubRooms {
		c.SubRooms[i] = sub.Clone()
	}
	return c
}

func occupied(n int) []bool {
	chairs := make([]bool, n)
	for i := range chairs {
		chairs[i] = true
	}
	return chairs
}

func clampSeats(n int) int {
	if n < MinRoundChairs {
		return MinRoundChairs
	}
	if n > MaxRoundChairs {
		return MaxRoundChairs
	}
	return n
}
