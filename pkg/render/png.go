// Package render draws floor plans as PNG images.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

// Options controls the image. Grid is the world grid unit, Scale the pixels
// per world unit. Zero values fall back to a 20 unit grid at 1px per unit.
type Options struct {
	Grid     float64
	Scale    float64
	ShowGrid bool
}

var (
	gridColor    = color.RGBA{225, 225, 225, 255}
	wallColor    = color.Black
	previewColor = color.RGBA{120, 120, 120, 255}
	tableColor   = color.RGBA{139, 90, 43, 255}
	chairColor   = color.RGBA{60, 60, 60, 255}
	labelColor   = color.RGBA{40, 40, 160, 255}
)

const padding = 20.0

type canvas struct {
	dc    *gg.Context
	minX  float64
	minY  float64
	scale float64
	grid  float64
}

func (c *canvas) px(p geom.Point) (float64, float64) {
	return (p.X-c.minX)*c.scale + padding, (p.Y-c.minY)*c.scale + padding
}

// Draw renders rooms, including temporary ones, into a new image sized to
// fit everything drawn.
func Draw(rooms plan.Layout, opts Options) (image.Image, error) {
	c, err := newCanvas(rooms, opts)
	if err != nil {
		return nil, err
	}
	c.draw(rooms, opts.ShowGrid)
	return c.dc.Image(), nil
}

// WritePNG encodes the rendered plan to w.
func WritePNG(w io.Writer, rooms plan.Layout, opts Options) error {
	c, err := newCanvas(rooms, opts)
	if err != nil {
		return err
	}
	c.draw(rooms, opts.ShowGrid)
	return c.dc.EncodePNG(w)
}

// SavePNG writes the rendered plan to filename.
func SavePNG(filename string, rooms plan.Layout, opts Options) error {
	c, err := newCanvas(rooms, opts)
	if err != nil {
		return err
	}
	c.draw(rooms, opts.ShowGrid)
	return c.dc.SavePNG(filename)
}

func newCanvas(rooms plan.Layout, opts Options) (*canvas, error) {
	grid := opts.Grid
	if grid <= 0 {
		grid = 20
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var pts []geom.Point
	var walk func(rs []plan.Room)
	walk = func(rs []plan.Room) {
		for _, r := range rs {
			for _, w := range r.Walls {
				pts = append(pts, w.Start(), w.End())
			}
			for _, t := range r.Tables {
				reach := grid
				pts = append(pts,
					geom.Pt(t.X-reach, t.Y-reach),
					geom.Pt(t.X+reach, t.Y+reach))
			}
			walk(r.SubRooms)
		}
	}
	walk(rooms)
	if len(pts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to export")
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	width := int(math.Ceil((maxX-minX)*scale + 2*padding))
	height := int(math.Ceil((maxY-minY)*scale + 2*padding))
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to parse font")
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	return &canvas{dc: dc, minX: minX, minY: minY, scale: scale, grid: grid}, nil
}

func (c *canvas) draw(rooms plan.Layout, showGrid bool) {
	if showGrid {
		c.drawGrid()
	}

	// Walls first so tables sit on top.
	var walls func(rs []plan.Room)
	walls = func(rs []plan.Room) {
		for _, r := range rs {
			c.drawWalls(r)
			walls(r.SubRooms)
		}
	}
	walls(rooms)

	var tables func(rs []plan.Room)
	tables = func(rs []plan.Room) {
		for _, r := range rs {
			for _, t := range r.Tables {
				c.drawTable(t)
			}
			tables(r.SubRooms)
		}
	}
	tables(rooms)

	var labels func(rs []plan.Room)
	labels = func(rs []plan.Room) {
		for _, r := range rs {
			c.drawLabel(r)
			labels(r.SubRooms)
		}
	}
	labels(rooms)
}

func (c *canvas) drawGrid() {
	step := c.grid * c.scale
	if step < 4 {
		return
	}
	w, h := float64(c.dc.Width()), float64(c.dc.Height())
	ox := math.Mod(padding-c.minX*c.scale, step)
	oy := math.Mod(padding-c.minY*c.scale, step)

	c.dc.SetColor(gridColor)
	c.dc.SetLineWidth(1)
	for x := ox; x < w; x += step {
		c.dc.DrawLine(x, 0, x, h)
	}
	for y := oy; y < h; y += step {
		c.dc.DrawLine(0, y, w, y)
	}
	c.dc.Stroke()
}

func (c *canvas) drawWalls(r plan.Room) {
	if r.IsTemporary {
		c.dc.SetColor(previewColor)
		c.dc.SetDash(6, 4)
		c.dc.SetLineWidth(2)
	} else {
		c.dc.SetColor(wallColor)
		c.dc.SetDash()
		c.dc.SetLineWidth(3)
	}
	for _, w := range r.Walls {
		x1, y1 := c.px(w.Start())
		x2, y2 := c.px(w.End())
		c.dc.DrawLine(x1, y1, x2, y2)
		c.dc.Stroke()
	}
	c.dc.SetDash()

	if r.IsTemporary {
		for _, p := range r.Polygon() {
			x, y := c.px(p)
			c.dc.DrawCircle(x, y, 3)
			c.dc.Fill()
		}
	}
}

func (c *canvas) drawTable(t plan.Table) {
	x, y := c.px(t.Pos())
	half := c.grid / 2 * c.scale

	c.dc.SetColor(tableColor)
	switch t.Type {
	case plan.Round:
		c.dc.DrawCircle(x, y, half)
	case plan.Diamond:
		c.dc.MoveTo(x, y-half)
		c.dc.LineTo(x+half, y)
		c.dc.LineTo(x, y+half)
		c.dc.LineTo(x-half, y)
		c.dc.ClosePath()
	default:
		c.dc.DrawRectangle(x-half, y-half, 2*half, 2*half)
	}
	c.dc.Fill()

	c.dc.SetColor(chairColor)
	c.dc.SetLineWidth(1)
	radius := c.grid / 5 * c.scale
	for i, p := range t.ChairPositions(c.grid * 0.85) {
		cx, cy := c.px(p)
		c.dc.DrawCircle(cx, cy, radius)
		if t.Chairs[i] {
			c.dc.Fill()
		} else {
			c.dc.Stroke()
		}
	}
}

func (c *canvas) drawLabel(r plan.Room) {
	if r.IsTemporary || r.Name == "" || len(r.Walls) == 0 {
		return
	}
	c.dc.SetColor(labelColor)
	if r.ID == plan.RootID {
		x, y := c.px(geom.Pt(c.minX, c.minY))
		c.dc.DrawString(r.Name, x+4, y+14)
		return
	}
	x, y := c.px(geom.Centroid(r.Polygon()))
	c.dc.DrawStringAnchored(r.Name, x, y, 0.5, 0.5)
}
