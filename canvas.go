package main

import (
	"math"

	"seatplan/pkg/editor"
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

// viewport maps terminal cells to world units. Cell (0,0) shows world point
// (panX*cellW, panY*cellH).
type viewport struct {
	cols, rows   int
	panX, panY   int
	cellW, cellH float64
}

func (v viewport) toWorld(col, row int) geom.Point {
	return geom.Pt(float64(col+v.panX)*v.cellW, float64(row+v.panY)*v.cellH)
}

func (v viewport) toCell(p geom.Point) cell {
	return cell{
		X: int(math.Round(p.X/v.cellW)) - v.panX,
		Y: int(math.Round(p.Y/v.cellH)) - v.panY,
	}
}

func (v viewport) contains(c cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < v.cols && c.Y < v.rows
}

// Wall directions leaving a cell.
const (
	dirUp = 1 << iota
	dirRight
	dirDown
	dirLeft
)

var boxRunes = map[int]rune{
	dirLeft | dirRight:                   '─',
	dirLeft:                              '─',
	dirRight:                             '─',
	dirUp | dirDown:                      '│',
	dirUp:                                '│',
	dirDown:                              '│',
	dirRight | dirDown:                   '┌',
	dirLeft | dirDown:                    '┐',
	dirUp | dirRight:                     '└',
	dirUp | dirLeft:                      '┘',
	dirUp | dirDown | dirRight:           '├',
	dirUp | dirDown | dirLeft:            '┤',
	dirLeft | dirRight | dirDown:         '┬',
	dirLeft | dirRight | dirUp:           '┴',
	dirUp | dirRight | dirDown | dirLeft: '┼',
}

const (
	gridRune         = '·'
	previewRune      = '░'
	previewPointRune = '○'
	pendingRune      = '×'
	chairRune        = 'o'
	emptyChairRune   = '.'
	selectedRune     = '◎'
	cursorRune       = '█'

	// Grid dots every gridEvery grid units keep the canvas readable.
	gridEvery = 5
)

var tableRunes = map[plan.TableType]rune{
	plan.Square:  '■',
	plan.Diamond: '◆',
	plan.Round:   '●',
}

type grid struct {
	v     viewport
	runes [][]rune
	walls [][]int
	diag  [][]rune
}

func newGrid(v viewport) *grid {
	g := &grid{v: v}
	g.runes = make([][]rune, v.rows)
	g.walls = make([][]int, v.rows)
	g.diag = make([][]rune, v.rows)
	for y := range g.runes {
		g.runes[y] = make([]rune, v.cols)
		g.walls[y] = make([]int, v.cols)
		g.diag[y] = make([]rune, v.cols)
		for x := range g.runes[y] {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *grid) set(c cell, r rune) {
	if g.v.contains(c) {
		g.runes[c.Y][c.X] = r
	}
}

func (g *grid) get(c cell) rune {
	if !g.v.contains(c) {
		return 0
	}
	return g.runes[c.Y][c.X]
}

// line walks the cells from a to b, calling step with each cell and the
// offset to the next one.
func line(a, b cell, step func(c cell, dx, dy int)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	c := a
	for c != b {
		e2 := 2 * err
		mx, my := 0, 0
		if e2 >= dy {
			err += dy
			mx = sx
		}
		if e2 <= dx {
			err += dx
			my = sy
		}
		step(c, mx, my)
		c = cell{c.X + mx, c.Y + my}
	}
	step(c, 0, 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (g *grid) addWall(w plan.Wall) {
	a, b := g.v.toCell(w.Start()), g.v.toCell(w.End())
	line(a, b, func(c cell, dx, dy int) {
		next := cell{c.X + dx, c.Y + dy}
		switch {
		case dx == 0 && dy == 0:
			if a == b && g.v.contains(c) {
				g.walls[c.Y][c.X] |= dirLeft | dirRight
			}
		case dx != 0 && dy != 0:
			r := '╲'
			if dx*dy < 0 {
				r = '╱'
			}
			if g.v.contains(c) {
				g.diag[c.Y][c.X] = r
			}
			if g.v.contains(next) {
				g.diag[next.Y][next.X] = r
			}
		default:
			from, to := direction(dx, dy)
			if g.v.contains(c) {
				g.walls[c.Y][c.X] |= from
			}
			if g.v.contains(next) {
				g.walls[next.Y][next.X] |= to
			}
		}
	})
}

// direction returns the bit for leaving a cell by (dx, dy) and the bit for
// entering the neighbour from the opposite side.
func direction(dx, dy int) (int, int) {
	switch {
	case dx > 0:
		return dirRight, dirLeft
	case dx < 0:
		return dirLeft, dirRight
	case dy > 0:
		return dirDown, dirUp
	}
	return dirUp, dirDown
}

func (g *grid) addPreview(w plan.Wall) {
	line(g.v.toCell(w.Start()), g.v.toCell(w.End()), func(c cell, _, _ int) {
		g.set(c, previewRune)
	})
}

func (g *grid) flushWalls() {
	for y := range g.walls {
		for x, mask := range g.walls[y] {
			if r, ok := boxRunes[mask]; ok {
				g.runes[y][x] = r
			} else if g.diag[y][x] != 0 {
				g.runes[y][x] = g.diag[y][x]
			}
		}
	}
}

func (g *grid) drawGrid(unit float64) {
	step := unit * gridEvery
	if step <= 0 {
		return
	}
	for y := 0; y < g.v.rows; y++ {
		for x := 0; x < g.v.cols; x++ {
			p := g.v.toWorld(x, y)
			if math.Mod(p.X, step) == 0 && math.Mod(p.Y, step) == 0 {
				g.runes[y][x] = gridRune
			}
		}
	}
}

func (g *grid) drawTable(t plan.Table, reach float64, marked bool) {
	for i, p := range t.ChairPositions(reach) {
		r := chairRune
		if !t.Chairs[i] {
			r = emptyChairRune
		}
		c := g.v.toCell(p)
		if cur := g.get(c); cur == ' ' || cur == gridRune {
			g.set(c, r)
		}
	}
	r, ok := tableRunes[t.Type]
	if !ok {
		r = tableRunes[plan.Square]
	}
	if marked {
		r = selectedRune
	}
	g.set(g.v.toCell(t.Pos()), r)
}

func (g *grid) drawLabel(r plan.Room) {
	if r.IsTemporary || r.ID == plan.RootID || len(r.Walls) < 3 {
		return
	}
	c := g.v.toCell(geom.Centroid(r.Polygon()))
	name := []rune(r.Name)
	c.X -= len(name) / 2
	for i, ch := range name {
		at := cell{c.X + i, c.Y}
		if cur := g.get(at); cur == ' ' || cur == gridRune {
			g.set(at, ch)
		}
	}
}

func (g *grid) lines() []string {
	out := make([]string, len(g.runes))
	for i, row := range g.runes {
		out[i] = string(row)
	}
	return out
}

// renderCanvas draws the snapshot into v.rows lines of v.cols runes. Tables
// are drawn over walls; labels and chairs only fill empty cells.
func renderCanvas(snap editor.Snapshot, v viewport) []string {
	if v.cols <= 0 || v.rows <= 0 {
		return nil
	}
	g := newGrid(v)
	g.drawGrid(snap.Grid)

	var temp []plan.Room
	var walk func(rooms []plan.Room)
	walk = func(rooms []plan.Room) {
		for _, r := range rooms {
			if r.IsTemporary {
				temp = append(temp, r)
				continue
			}
			for _, w := range r.Walls {
				g.addWall(w)
			}
			walk(r.SubRooms)
		}
	}
	walk(snap.Rooms)
	g.flushWalls()

	for _, r := range temp {
		for _, w := range r.Walls {
			g.addPreview(w)
		}
	}

	var marked []geom.Point
	switch t := snap.Tool.(type) {
	case editor.WallTool:
		if t.First != nil {
			g.set(v.toCell(*t.First), pendingRune)
		}
	case editor.RoomTool:
		for _, p := range t.Points {
			g.set(v.toCell(p), previewPointRune)
		}
	case editor.TableTool:
		if t.Selected != nil {
			marked = append(marked, *t.Selected)
		}
		if t.Prompt != nil {
			marked = append(marked, *t.Prompt)
		}
	}

	var labels func(rooms []plan.Room)
	labels = func(rooms []plan.Room) {
		for _, r := range rooms {
			g.drawLabel(r)
			labels(r.SubRooms)
		}
	}

	for _, pt := range snap.Rooms.Tables() {
		isMarked := false
		for _, p := range marked {
			if p.Eq(pt.Pos()) {
				isMarked = true
			}
		}
		g.drawTable(pt.Table, snap.Grid, isMarked)
	}
	labels(snap.Rooms)

	return g.lines()
}
