// Package editor turns pointer clicks into floor-plan edits.
//
// An Editor owns the current Layout and the active Tool. Click classifies a
// world coordinate by the tool and its sub-mode, advances multi-click
// gestures, and swaps in the Layout returned by the plan operation. Rejected
// clicks come back as coded errors from seatplan/pkg/errors and leave both
// the layout and the tool untouched.
//
// The editor is driven from a single event loop and holds no locks.
package editor

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 800
	DefaultGrid   = 20
)

// Options configures a new Editor. Zero values fall back to the defaults.
type Options struct {
	Width, Height float64
	Grid          float64
	Logger        *log.Logger
}

type Editor struct {
	layout plan.Layout
	tool   Tool
	shape  plan.TableType

	width, height float64
	grid          float64

	logger *log.Logger
}

// Snapshot is a deep copy of the editor state for rendering. Rooms carries
// the layout plus, while a polygon has at least two points, the preview room.
type Snapshot struct {
	Rooms         plan.Layout
	Tool          Tool
	Width, Height float64
	Grid          float64
}

func New(opts Options) *Editor {
	e := &Editor{
		tool:   NoTool{},
		shape:  plan.Square,
		width:  opts.Width,
		height: opts.Height,
		grid:   opts.Grid,
		logger: opts.Logger,
	}
	if e.width <= 0 {
		e.width = DefaultWidth
	}
	if e.height <= 0 {
		e.height = DefaultHeight
	}
	if e.grid <= 0 {
		e.grid = DefaultGrid
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.layout = plan.NewLayout(e.width, e.height)
	return e
}

func (e *Editor) Layout() plan.Layout { return e.layout.Clone() }

func (e *Editor) Tool() Tool { return cloneTool(e.tool) }

func (e *Editor) Grid() float64 { return e.grid }

func (e *Editor) CanvasSize() (width, height float64) { return e.width, e.height }

// Shape is the table shape new tables get.
func (e *Editor) Shape() plan.TableType { return e.shape }

func (e *Editor) Snapshot() Snapshot {
	rooms := e.layout.Clone()
	if preview, ok := e.Preview(); ok {
		rooms = append(rooms, preview)
	}
	return Snapshot{
		Rooms:  rooms,
		Tool:   e.Tool(),
		Width:  e.width,
		Height: e.height,
		Grid:   e.grid,
	}
}

// Preview returns the temporary room drawn over the collected polygon points.
func (e *Editor) Preview() (plan.Room, bool) {
	rt, ok := e.tool.(RoomTool)
	if !ok || len(rt.Points) < 2 {
		return plan.Room{}, false
	}
	return plan.NewPreview(rt.Points), true
}

func errBusy() error {
	return errors.New(errors.ErrCodeBusy, "finish current operation first")
}

// SelectTool switches to the tool of the given kind in its default mode. It
// is refused while a wall endpoint is pending or a polygon has points.
func (e *Editor) SelectTool(k ToolKind) error {
	if Busy(e.tool) {
		return errBusy()
	}
	switch k {
	case KindWall:
		e.tool = WallTool{Mode: WallAdd}
	case KindTable:
		e.tool = TableTool{Mode: TableAdd, Shape: e.shape}
	case KindRoom:
		e.tool = RoomTool{Points: []geom.Point{}}
	default:
		e.tool = NoTool{}
	}
	e.logger.Debug("tool selected", "tool", k)
	return nil
}

// SelectWallMode switches the wall sub-tool, selecting the wall tool first if
// needed.
func (e *Editor) SelectWallMode(m WallMode) error {
	wt, ok := e.tool.(WallTool)
	if !ok {
		if err := e.SelectTool(KindWall); err != nil {
			return err
		}
		wt = e.tool.(WallTool)
	}
	if wt.First != nil {
		return errBusy()
	}
	wt.Mode = m
	e.tool = wt
	return nil
}

// SelectTableMode switches the table sub-tool, dropping any selection or
// open seat-count prompt.
func (e *Editor) SelectTableMode(m TableMode) error {
	tt, ok := e.tool.(TableTool)
	if !ok {
		if err := e.SelectTool(KindTable); err != nil {
			return err
		}
		tt = e.tool.(TableTool)
	}
	tt.Mode = m
	tt.Selected = nil
	tt.Prompt = nil
	e.tool = tt
	return nil
}

// SetTableShape picks the shape for new tables.
func (e *Editor) SetTableShape(s plan.TableType) {
	e.shape = s
	if tt, ok := e.tool.(TableTool); ok {
		tt.Shape = s
		e.tool = tt
	}
}

// Click applies a pointer press at world coordinates (x, y) to the active
// tool.
func (e *Editor) Click(x, y float64) error {
	p := geom.Pt(x, y)
	switch t := e.tool.(type) {
	case WallTool:
		return e.clickWall(t, p)
	case TableTool:
		return e.clickTable(t, p)
	case RoomTool:
		return e.clickRoom(t, p)
	}
	return errors.New(errors.ErrCodeInvalidInput, "pick a tool first")
}

func (e *Editor) clickWall(t WallTool, p geom.Point) error {
	if t.Mode == WallDelete {
		next, n := e.layout.DeleteWallsAt(p, plan.WallHitDistance)
		if n == 0 {
			return errors.New(errors.ErrCodeNotFound, "no wall here")
		}
		e.layout = next
		e.logger.Debug("walls erased", "count", n, "x", p.X, "y", p.Y)
		return nil
	}

	if t.First == nil {
		t.First = &p
		e.tool = t
		return nil
	}
	next, err := e.layout.AddWall(plan.NewWall(*t.First, p))
	if err != nil {
		return err
	}
	e.logger.Debug("wall added", "from", *t.First, "to", p)
	e.layout = next
	t.First = nil
	e.tool = t
	return nil
}

func (e *Editor) clickRoom(t RoomTool, p geom.Point) error {
	s := geom.Snap(p, e.grid)
	closing := len(t.Points) > 0 && s.Eq(t.Points[0])

	if closing && len(t.Points) < 3 {
		return errors.New(errors.ErrCodeTooFewPoints, "a room needs at least 3 points")
	}
	if closing {
		next, room, err := e.layout.CreateRoom(t.Points, "")
		if err != nil {
			return err
		}
		e.layout = next
		e.tool = NoTool{}
		e.logger.Debug("room created", "id", room.ID, "name", room.Name, "tables", len(room.Tables))
		return nil
	}

	t.Points = append(t.Points, s)
	e.tool = t
	return nil
}

func (e *Editor) clickTable(t TableTool, p geom.Point) error {
	if t.Prompt != nil {
		return errors.New(errors.ErrCodeBusy, "enter a seat count first")
	}

	switch t.Mode {
	case TableDelete:
		hit, ok := e.layout.TableAt(p, e.grid/2)
		if !ok {
			return errors.New(errors.ErrCodeNoTable, "no table here")
		}
		next, err := e.layout.RemoveTable(hit.Pos())
		if err != nil {
			return err
		}
		e.layout = next
		e.logger.Debug("table removed", "at", hit.Pos())
		return nil

	case TableMove:
		return e.moveTable(t, p)

	case TableMerge:
		return e.mergeTable(t, p)

	case TableChairs:
		return e.editChairs(t, p)
	}

	s := geom.Snap(p, e.grid)
	if e.layout.TableNear(s, 2*e.grid) {
		return errors.New(errors.ErrCodeTooClose, "too close to another table")
	}
	next, err := e.layout.AddTable(plan.NewTable(s, t.Shape))
	if err != nil {
		return err
	}
	e.layout = next
	e.logger.Debug("table added", "at", s, "shape", t.Shape)
	return nil
}

func (e *Editor) moveTable(t TableTool, p geom.Point) error {
	if t.Selected == nil {
		hit, ok := e.layout.TableAt(p, e.grid/2)
		if !ok {
			return errors.New(errors.ErrCodeNoTable, "no table here")
		}
		pos := hit.Pos()
		t.Selected = &pos
		e.tool = t
		return nil
	}

	to := geom.Snap(p, e.grid)
	next, err := e.layout.MoveTable(*t.Selected, to)
	if err != nil {
		return err
	}
	e.logger.Debug("table moved", "from", *t.Selected, "to", to)
	e.layout = next
	t.Selected = nil
	e.tool = t
	return nil
}

func (e *Editor) mergeTable(t TableTool, p geom.Point) error {
	hit, ok := e.layout.TableAt(p, e.grid/2)
	if t.Selected == nil {
		if !ok {
			return errors.New(errors.ErrCodeNoTable, "no table here")
		}
		pos := hit.Pos()
		t.Selected = &pos
		e.tool = t
		return nil
	}

	if !ok || hit.Pos().Eq(*t.Selected) {
		t.Selected = nil
		e.tool = t
		return nil
	}
	next, merged, err := e.layout.MergeTables(*t.Selected, hit.Pos(), e.grid)
	if err != nil {
		return err
	}
	e.logger.Debug("tables merged", "a", *t.Selected, "b", hit.Pos(), "at", merged.Pos(), "chairs", len(merged.Chairs))
	e.layout = next
	t.Selected = nil
	e.tool = t
	return nil
}

func (e *Editor) editChairs(t TableTool, p geom.Point) error {
	hit, ok := e.layout.TableAt(p, e.grid)
	if !ok {
		return errors.New(errors.ErrCodeNoTable, "no table here")
	}
	if !hit.Type.Fixed() {
		pos := hit.Pos()
		t.Prompt = &pos
		e.tool = t
		return nil
	}
	next, slot, err := e.layout.ToggleChair(hit.Pos(), p)
	if err != nil {
		return err
	}
	e.layout = next
	e.logger.Debug("chair toggled", "table", hit.Pos(), "slot", slot)
	return nil
}

// Prompting reports whether a round table is waiting for a seat count.
func (e *Editor) Prompting() bool {
	tt, ok := e.tool.(TableTool)
	return ok && tt.Prompt != nil
}

// SubmitSeatCount answers the seat-count prompt. The count is clamped to the
// round-table limits; text that is not an integer keeps the prompt open.
func (e *Editor) SubmitSeatCount(text string) error {
	tt, ok := e.tool.(TableTool)
	if !ok || tt.Prompt == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no table is waiting for a seat count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "seat count must be a whole number")
	}
	next, applied, err := e.layout.ResizeChairs(*tt.Prompt, n)
	if err != nil {
		return err
	}
	e.logger.Debug("chairs resized", "table", *tt.Prompt, "requested", n, "chairs", applied)
	e.layout = next
	tt.Prompt = nil
	e.tool = tt
	return nil
}

// CancelPrompt closes the seat-count prompt without changes.
func (e *Editor) CancelPrompt() {
	if tt, ok := e.tool.(TableTool); ok {
		tt.Prompt = nil
		e.tool = tt
	}
}

func (e *Editor) RenameRoom(id int, name string) error {
	next, err := e.layout.RenameRoom(id, name)
	if err != nil {
		return err
	}
	e.layout = next
	e.logger.Debug("room renamed", "id", id, "name", strings.TrimSpace(name))
	return nil
}

func (e *Editor) DeleteRoom(id int) error {
	next, err := e.layout.DeleteRoom(id)
	if err != nil {
		return err
	}
	e.layout = next
	e.logger.Debug("room deleted", "id", id)
	return nil
}

// Export writes the layout as JSON. The preview room is never included.
func (e *Editor) Export(w io.Writer) error {
	return plan.Encode(w, e.layout)
}

// Import replaces the layout with the one read from r and drops the active
// tool. Nothing changes when r does not hold a layout.
func (e *Editor) Import(r io.Reader) error {
	l, err := plan.Decode(r)
	if err != nil {
		return err
	}
	e.layout = l
	e.tool = NoTool{}
	e.logger.Debug("layout imported", "rooms", l.Count())
	return nil
}

// Reset starts over with a bare main room sized to the canvas.
func (e *Editor) Reset() {
	e.layout = plan.NewLayout(e.width, e.height)
	e.tool = NoTool{}
	e.logger.Debug("layout reset", "width", e.width, "height", e.height)
}

// SetCanvasSize sets the size the next Reset frames the main room with.
func (e *Editor) SetCanvasSize(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive")
	}
	e.width, e.height = width, height
	return nil
}
