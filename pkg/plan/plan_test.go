package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatplan/pkg/geom"
)

func square(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(1000, 800)
	require.Len(t, l, 1)

	root := l[0]
	assert.Equal(t, RootID, root.ID)
	assert.Equal(t, "Main room", root.Name)
	assert.False(t, root.IsTemporary)
	assert.Equal(t, []Wall{
		{0, 0, 1000, 0},
		{1000, 0, 1000, 800},
		{1000, 800, 0, 800},
		{0, 800, 0, 0},
	}, root.Walls)
	assert.Empty(t, root.Tables)
	assert.NotNil(t, root.Tables)
	assert.NotNil(t, root.SubRooms)
}

func TestNewTableChairs(t *testing.T) {
	tests := []struct {
		shape TableType
		want  int
	}{
		{Square, 4},
		{Diamond, 4},
		{Round, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			tbl := NewTable(geom.Pt(40, 60), tt.shape)
			assert.Len(t, tbl.Chairs, tt.want)
			assert.Equal(t, tt.want, tbl.Occupied())
			assert.Equal(t, geom.Pt(40, 60), tbl.Pos())
		})
	}
}

func TestParseTableType(t *testing.T) {
	for _, shape := range TableTypes {
		got, err := ParseTableType(string(shape))
		require.NoError(t, err)
		assert.Equal(t, shape, got)
	}
	_, err := ParseTableType("hexagon")
	assert.Error(t, err)

	assert.Equal(t, "square", TableType("").String())
	assert.True(t, TableType("hexagon").Fixed())
	assert.False(t, Round.Fixed())
}

func TestRoomContains(t *testing.T) {
	r := NewRoom(1, "Bar", square(0, 0, 200, 200))
	assert.True(t, r.Contains(geom.Pt(100, 100)))
	assert.False(t, r.Contains(geom.Pt(300, 100)))

	open := Room{Walls: []Wall{{0, 0, 100, 0}, {100, 0, 100, 100}}}
	assert.False(t, open.Contains(geom.Pt(50, 10)), "two walls enclose nothing")
}

func TestCloneIsDeep(t *testing.T) {
	l := NewLayout(1000, 800)
	l, err := l.AddTable(NewTable(geom.Pt(100, 100), Square))
	require.NoError(t, err)

	c := l.Clone()
	c[0].Tables[0].Chairs[0] = false
	c[0].Walls[0][0] = 42

	assert.True(t, l[0].Tables[0].Chairs[0])
	assert.Equal(t, 0.0, l[0].Walls[0][0])
}

func TestRoomAtInnermost(t *testing.T) {
	l := NewLayout(1000, 800)
	l, outer, err := l.CreateRoom(square(0, 0, 400, 400), "")
	require.NoError(t, err)

	// Nest a room by hand: CreateRoom always attaches to the root.
	inner := NewRoom(l.NextID(), "Booth", square(100, 100, 200, 200))
	l[0].SubRooms[0].SubRooms = append(l[0].SubRooms[0].SubRooms, inner)

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{"inside inner", geom.Pt(150, 150), inner.ID},
		{"inside outer only", geom.Pt(300, 300), outer.ID},
		{"root only", geom.Pt(600, 600), RootID},
		{"outside everything", geom.Pt(5000, 5000), RootID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.RoomAt(tt.p)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListingSkipsTemporary(t *testing.T) {
	l := NewLayout(1000, 800)
	l, _, err := l.CreateRoom(square(0, 0, 200, 200), "")
	require.NoError(t, err)
	l[0].SubRooms = append(l[0].SubRooms, NewPreview(square(300, 300, 400, 400)))

	assert.Equal(t, []Entry{
		{ID: 0, Name: "Main room", Depth: 0, Tables: 0},
		{ID: 1, Name: "Room 1", Depth: 1, Tables: 0},
	}, l.Listing())
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 2, l.NextID())
}

func TestNextIDAfterDeletion(t *testing.T) {
	l := NewLayout(1000, 800)
	var err error
	l, _, err = l.CreateRoom(square(0, 0, 100, 100), "")
	require.NoError(t, err)
	l, _, err = l.CreateRoom(square(200, 0, 300, 100), "")
	require.NoError(t, err)
	l, err = l.DeleteRoom(1)
	require.NoError(t, err)

	// Count is 2 but ID 2 is still taken.
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 3, l.NextID())
}

func TestTableAtPicksClosest(t *testing.T) {
	l := NewLayout(1000, 800)
	var err error
	l, err = l.AddTable(NewTable(geom.Pt(100, 100), Square))
	require.NoError(t, err)
	l, err = l.AddTable(NewTable(geom.Pt(120, 100), Round))
	require.NoError(t, err)

	got, ok := l.TableAt(geom.Pt(113, 100), 10)
	require.True(t, ok)
	assert.Equal(t, Round, got.Type)

	_, ok = l.TableAt(geom.Pt(100, 111), 10)
	assert.False(t, ok)
}

func TestTableNear(t *testing.T) {
	l := NewLayout(1000, 800)
	l, err := l.AddTable(NewTable(geom.Pt(100, 100), Square))
	require.NoError(t, err)

	assert.True(t, l.TableNear(geom.Pt(120, 120), 40))
	assert.False(t, l.TableNear(geom.Pt(140, 100), 40), "boundary is exclusive")
	assert.False(t, l.TableNear(geom.Pt(100, 200), 40))
}
