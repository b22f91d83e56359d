package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

func TestWriteInspect(t *testing.T) {
	layout := plan.NewLayout(1000, 800)
	layout, err := layout.AddTable(plan.NewTable(geom.Pt(100, 100), plan.Square))
	require.NoError(t, err)
	round := plan.NewTable(geom.Pt(300, 300), plan.Round)
	round.Chairs[0] = false
	layout, err = layout.AddTable(round)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeInspect(&buf, layout))
	out := buf.String()

	assert.Contains(t, out, "Main room")
	assert.Contains(t, out, "#0, 4 walls, 2 tables, 9 seats")
	assert.Contains(t, out, "square  (100,100) ●●●●")
	assert.Contains(t, out, "round   (300,300) ○●●●●●")
	assert.Contains(t, out, "1 rooms, 2 tables, 9 seats")
}

func TestChairString(t *testing.T) {
	table := plan.NewTable(geom.Pt(0, 0), plan.Diamond)
	table.Chairs[plan.SlotRight] = false
	assert.Equal(t, "●○●●", chairString(table))
}
