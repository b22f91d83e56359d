package plan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := NewLayout(1000, 800)
	l, _, err := l.CreateRoom(square(0, 0, 200, 200), "Bar")
	require.NoError(t, err)
	l = withTables(t, l, geom.Pt(100, 100), geom.Pt(500, 500))
	l, err = l.AddTable(NewTable(geom.Pt(700, 300), Round))
	require.NoError(t, err)
	l, _, err = l.ToggleChair(geom.Pt(100, 100), geom.Pt(120, 100))
	require.NoError(t, err)

	// A booth nested inside the bar, holding a diamond table.
	booth := NewRoom(l.NextID(), "Booth", square(20, 20, 80, 80))
	booth.Tables = append(booth.Tables, NewTable(geom.Pt(50, 50), Diamond))
	l[0].SubRooms[0].SubRooms = append(l[0].SubRooms[0].SubRooms, booth)
	require.Equal(t, 3, l.Count())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, l))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	nested, ok := got.Find(booth.ID)
	require.True(t, ok)
	require.Len(t, nested.Tables, 1)
	assert.Equal(t, Diamond, nested.Tables[0].Type)
	assert.Equal(t, 4, nested.Tables[0].Occupied())
}

func TestEncodeShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Layout{{ID: 3, Name: "Loose"}}))

	out := buf.String()
	for _, key := range []string{`"id": 3`, `"name": "Loose"`, `"walls": []`, `"tables": []`, `"subRooms": []`, `"isTemporary": false`} {
		assert.Contains(t, out, key)
	}
	assert.True(t, strings.HasPrefix(out, "["))

	buf.Reset()
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDecodeOriginalFormat(t *testing.T) {
	in := `[{"id":0,"name":"Main room","walls":[[0,0,1000,0],[1000,0,1000,800]],
		"tables":[{"x":100,"y":100,"type":"diamond","chairs":[true,false,true,true]}],
		"subRooms":[{"id":1,"name":"Room 1","walls":[],"tables":[],"subRooms":[],"isTemporary":false}],
		"isTemporary":false}]`

	l, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, l, 1)
	assert.Equal(t, Wall{1000, 0, 1000, 800}, l[0].Walls[1])
	require.Len(t, l[0].Tables, 1)
	assert.Equal(t, Diamond, l[0].Tables[0].Type)
	assert.Equal(t, 3, l[0].Tables[0].Occupied())
	assert.Equal(t, 2, l.Count())
}

func TestDecodeNormalizesMissingSlices(t *testing.T) {
	l, err := Decode(strings.NewReader(`[{"id":0,"name":"Main room","subRooms":[{"id":1,"name":"x"}]}]`))
	require.NoError(t, err)

	assert.NotNil(t, l[0].Walls)
	assert.NotNil(t, l[0].Tables)
	sub := l[0].SubRooms[0]
	assert.NotNil(t, sub.Walls)
	assert.NotNil(t, sub.Tables)
	assert.NotNil(t, sub.SubRooms)
}

func TestDecodeTrailingWhitespace(t *testing.T) {
	l, err := Decode(strings.NewReader("[{\"id\":0,\"name\":\"Main room\"}]\n\n  \t"))
	require.NoError(t, err)
	assert.Len(t, l, 1)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		`not json`,
		`{"id": 0}`,
		`[{"walls": "nope"}]`,
		``,
		`[] this is not json`,
		`[]]`,
		`[] []`,
		`[{"id":0,"name":"Main room"}] {}`,
	}
	for _, in := range tests {
		_, err := Decode(strings.NewReader(in))
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	}
}
