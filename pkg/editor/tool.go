package editor

import (
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

type ToolKind int

const (
	KindNone ToolKind = iota
	KindWall
	KindTable
	KindRoom
)

func (k ToolKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindTable:
		return "table"
	case KindRoom:
		return "room"
	}
	return "none"
}

type WallMode int

const (
	WallAdd WallMode = iota
	WallDelete
)

func (m WallMode) String() string {
	if m == WallDelete {
		return "delete"
	}
	return "add"
}

type TableMode int

const (
	TableAdd TableMode = iota
	TableDelete
	TableMove
	TableMerge
	TableChairs
)

// TableModes lists the table sub-tools in menu order.
var TableModes = []TableMode{TableAdd, TableDelete, TableMove, TableMerge, TableChairs}

func (m TableMode) String() string {
	switch m {
	case TableDelete:
		return "delete"
	case TableMove:
		return "move"
	case TableMerge:
		return "merge"
	case TableChairs:
		return "chairs"
	}
	return "add"
}

// Tool is the active tool together with the state of its gesture. The
// concrete types are NoTool, WallTool, TableTool and RoomTool.
type Tool interface {
	Kind() ToolKind
	isTool()
}

type NoTool struct{}

// WallTool draws a wall between two clicks, or erases walls near a click.
type WallTool struct {
	Mode  WallMode
	First *geom.Point // pending endpoint
}

// TableTool places and edits tables. Selected holds the first pick of a move
// or merge; Prompt is the round table waiting for a seat count.
type TableTool struct {
	Mode     TableMode
	Shape    plan.TableType
	Selected *geom.Point
	Prompt   *geom.Point
}

// RoomTool collects polygon vertices until the first one is clicked again.
type RoomTool struct {
	Points []geom.Point
}

func (NoTool) Kind() ToolKind    { return KindNone }
func (WallTool) Kind() ToolKind  { return KindWall }
func (TableTool) Kind() ToolKind { return KindTable }
func (RoomTool) Kind() ToolKind  { return KindRoom }

func (NoTool) isTool()    {}
func (WallTool) isTool()  {}
func (TableTool) isTool() {}
func (RoomTool) isTool()  {}

// Busy reports whether t is in the middle of a multi-click gesture that must
// finish before another tool can take over.
func Busy(t Tool) bool {
	switch t := t.(type) {
	case WallTool:
		return t.First != nil
	case RoomTool:
		return len(t.Points) > 0
	}
	return false
}

func copyPoint(p *geom.Point) *geom.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneTool(t Tool) Tool {
	switch t := t.(type) {
	case WallTool:
		t.First = copyPoint(t.First)
		return t
	case TableTool:
		t.Selected = copyPoint(t.Selected)
		t.Prompt = copyPoint(t.Prompt)
		return t
	case RoomTool:
		t.Points = append([]geom.Point{}, t.Points...)
		return t
	case nil:
		return NoTool{}
	}
	return t
}
