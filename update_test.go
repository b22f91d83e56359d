package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatplan/pkg/editor"
	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := newModel(editor.New(editor.Options{}), config, nil, "")
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keys(ss ...string) []tea.Msg {
	out := make([]tea.Msg, len(ss))
	for i, s := range ss {
		out[i] = key(s)
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func rootRoom(t *testing.T, m model) plan.Room {
	t.Helper()
	root, ok := m.editor.Layout().Root()
	require.True(t, ok)
	return root
}

func TestViewportLeavesRoomForPanel(t *testing.T) {
	m := newTestModel(t)
	v := m.viewport()
	assert.Equal(t, 120-roomListWidth-1, v.cols)
	assert.Equal(t, 39, v.rows)

	m = send(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	assert.False(t, m.showRoomList())
	assert.Equal(t, 50, m.viewport().cols)
}

func TestMouseDrawsWall(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("w"), press(10, 5), press(30, 5))

	walls := rootRoom(t, m).Walls
	require.Len(t, walls, 5)
	assert.Equal(t, plan.Wall{100, 100, 300, 100}, walls[4])
	assert.True(t, m.dirty)
	assert.Empty(t, m.errorMessage)
	assert.Equal(t, 30, m.cursorX)
}

func TestKeyboardClickAtCursor(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("t"))
	m = send(t, m, keys("l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "j", "j", "j", "j", "j")...)
	assert.Equal(t, geom.Pt(100, 100), m.cursorWorld())

	m = send(t, m, key(" "))
	tables := m.editor.Layout().Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, geom.Pt(100, 100), tables[0].Pos())
}

func TestBusyToolSwitchShowsError(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("w"), press(10, 5), key("t"))
	assert.Equal(t, "finish current operation first", m.errorMessage)
	assert.Equal(t, editor.KindWall, m.editor.Tool().Kind())

	m = send(t, m, key("esc"))
	assert.Equal(t, editor.KindWall, m.editor.Tool().Kind())
}

func TestClickWithoutToolShowsError(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, press(10, 5))
	assert.NotEmpty(t, m.errorMessage)
	assert.False(t, m.dirty)
}

func TestSeatCountPrompt(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("f"), key("f"))
	assert.Equal(t, plan.Round, m.editor.Shape())

	m = send(t, m, key("t"), press(10, 5), key("5"), press(10, 5))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, PromptSeatCount, m.prompt)

	m = send(t, m, key("3"), key("enter"))
	assert.Equal(t, ModeNormal, m.mode)
	tables := m.editor.Layout().Tables()
	require.Len(t, tables, 1)
	assert.Len(t, tables[0].Chairs, 3)
	assert.False(t, m.editor.Prompting())
}

func TestSeatCountPromptRejectsText(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("f"), key("f"), key("t"), press(10, 5), key("5"), press(10, 5))
	m = send(t, m, key("x"), key("enter"))
	assert.Equal(t, ModePrompt, m.mode)
	assert.NotEmpty(t, m.errorMessage)

	m = send(t, m, key("esc"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.editor.Prompting())
	assert.Len(t, m.editor.Layout().Tables()[0].Chairs, 6)
}

func TestWallModeToggle(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("W"))
	wt, ok := m.editor.Tool().(editor.WallTool)
	require.True(t, ok)
	assert.Equal(t, editor.WallDelete, wt.Mode)

	m = send(t, m, key("W"))
	assert.Equal(t, editor.WallAdd, m.editor.Tool().(editor.WallTool).Mode)
}

func TestTableModeKeys(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("3"))
	tt, ok := m.editor.Tool().(editor.TableTool)
	require.True(t, ok)
	assert.Equal(t, editor.TableMove, tt.Mode)
	assert.Contains(t, m.successMessage, "move")
}

func drawRoom(t *testing.T, m model) model {
	t.Helper()
	// Corners at world (100,100), (300,100), (300,300), (100,300).
	return send(t, m, key("r"), press(10, 5), press(30, 5), press(30, 15), press(10, 15), press(10, 5))
}

func TestRoomToolAndRename(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	require.Equal(t, 2, m.editor.Layout().Count())
	assert.Equal(t, editor.KindNone, m.editor.Tool().Kind())

	m.cursorX, m.cursorY = 20, 10
	m = send(t, m, key("e"))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, PromptRoomName, m.prompt)

	m.input.SetValue("Terrace")
	m = send(t, m, key("enter"))
	assert.Equal(t, ModeNormal, m.mode)
	room, ok := m.editor.Layout().Find(1)
	require.True(t, ok)
	assert.Equal(t, "Terrace", room.Name)
}

func TestRoomListDeleteWithConfirm(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	m = send(t, m, key("tab"))
	require.Equal(t, ModeRoomList, m.mode)

	m = send(t, m, key("D"))
	assert.Contains(t, m.errorMessage, "main room")

	m = send(t, m, key("j"), key("D"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDeleteRoom, m.confirmAction)

	m = send(t, m, key("n"))
	assert.Equal(t, ModeRoomList, m.mode)
	assert.Equal(t, 2, m.editor.Layout().Count())

	m = send(t, m, key("D"), key("y"))
	assert.Equal(t, ModeRoomList, m.mode)
	assert.Equal(t, 1, m.editor.Layout().Count())
	assert.Equal(t, 0, m.roomIndex)

	m = send(t, m, key("esc"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuitConfirmation(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	m = send(t, m, key("w"), press(10, 5), press(30, 5), key("q"))
	assert.Equal(t, ModeConfirm, m.mode)
	m = send(t, m, key("n"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestResetConfirmation(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	m = send(t, m, key("x"), key("y"))
	assert.Equal(t, 1, m.editor.Layout().Count())
	assert.False(t, m.dirty)
}

func TestPanModeMovesView(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("z"), key("l"), key("l"), key("j"))
	assert.Equal(t, 2, m.panX)
	assert.Equal(t, 1, m.panY)
	assert.Equal(t, 0, m.cursorX)
	assert.Equal(t, geom.Pt(20, 20), m.cursorWorld())

	m = send(t, m, key("esc"))
	assert.False(t, m.zPanMode)
}

func TestFocusRoomAfterPanning(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	m = send(t, m, key("z"), key("l"), key("l"), key("l"), key("j"), key("esc"))
	require.Equal(t, 3, m.panX)

	for i := 0; i < 2; i++ {
		m = send(t, m, key("tab"), key("j"), key("enter"))
		require.Equal(t, ModeNormal, m.mode)

		v := m.viewport()
		assert.Equal(t, 20-v.cols/2, m.panX)
		assert.Equal(t, 10-v.rows/2, m.panY)
		assert.Equal(t, geom.Pt(200, 200), m.cursorWorld(), "cursor on the room center")
	}
}

func TestCanvasSizePrompt(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("c"))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, PromptCanvasSize, m.prompt)
	assert.Equal(t, "1000x800", m.input.Value())

	m.input.SetValue("wide")
	m = send(t, m, key("enter"))
	assert.Equal(t, ModePrompt, m.mode)
	assert.NotEmpty(t, m.errorMessage)

	m.input.SetValue("600x400")
	m = send(t, m, key("enter"))
	require.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, plan.Wall{0, 0, 600, 0}, rootRoom(t, m).Walls[0], "blank layout is rebuilt")

	m = drawRoom(t, m)
	m = send(t, m, key("c"))
	m.input.SetValue("1200x900")
	m = send(t, m, key("enter"))
	require.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 2, m.editor.Layout().Count(), "edited layout is kept")
	assert.Contains(t, m.successMessage, "press x")

	m = send(t, m, key("x"), key("y"))
	assert.Equal(t, plan.Wall{0, 0, 1200, 0}, rootRoom(t, m).Walls[0])
}

func TestParseCanvasSize(t *testing.T) {
	w, h, err := parseCanvasSize(" 1200 X 900 ")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, w)
	assert.Equal(t, 900.0, h)

	for _, in := range []string{"", "1200", "ax900", "1200xb"} {
		_, _, err := parseCanvasSize(in)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "input %q", in)
	}
}

func TestSaveAndOpen(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	m = send(t, m, key("s"))
	require.Equal(t, ModeFileInput, m.mode)

	m.input.SetValue("dining")
	m = send(t, m, key("enter"))
	require.Equal(t, ModeNormal, m.mode, m.errorMessage)
	path := filepath.Join(m.config.SaveDirectory, "dining.json")
	assert.FileExists(t, path)
	assert.Equal(t, path, m.filename)
	assert.False(t, m.dirty)

	m = send(t, m, key("x"), key("y"))
	assert.Equal(t, 1, m.editor.Layout().Count())

	m = send(t, m, key("o"))
	require.Equal(t, ModeFileInput, m.mode)
	assert.Equal(t, []string{"dining.json"}, m.fileList)
	assert.Equal(t, "dining", m.input.Value())

	m = send(t, m, key("enter"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 2, m.editor.Layout().Count())
}

func TestSaveAsksBeforeOverwrite(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(m.config.SaveDirectory, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	m = send(t, m, key("s"))
	m.input.SetValue("plan")
	m = send(t, m, key("enter"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmOverwriteFile, m.confirmAction)

	m = send(t, m, key("y"))
	assert.Equal(t, ModeNormal, m.mode)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Main room")
}

func TestOpenInvalidFileKeepsLayout(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	path := filepath.Join(m.config.SaveDirectory, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	err := m.runFileOp(FileOpOpen, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a layout file")
	assert.Equal(t, 2, m.editor.Layout().Count())
}

func TestExports(t *testing.T) {
	m := drawRoom(t, newTestModel(t))
	dir := m.config.SaveDirectory

	txt := filepath.Join(dir, "plan.txt")
	require.NoError(t, m.runFileOp(FileOpSaveVisualTXT, txt))
	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Contains(t, string(data), "┌")

	png := filepath.Join(dir, "plan.png")
	require.NoError(t, m.runFileOp(FileOpSavePNG, png))
	data, err = os.ReadFile(png)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestResolveFilename(t *testing.T) {
	m := newTestModel(t)
	dir := m.config.SaveDirectory
	assert.Equal(t, filepath.Join(dir, "a.json"), m.resolveFilename("a", FileOpSave))
	assert.Equal(t, filepath.Join(dir, "a.json"), m.resolveFilename("a.json", FileOpOpen))
	assert.Equal(t, filepath.Join(dir, "a.png"), m.resolveFilename("a", FileOpSavePNG))
	assert.Equal(t, filepath.Join(dir, "a.txt"), m.resolveFilename("a", FileOpSaveVisualTXT))
}

func TestPasteLayout(t *testing.T) {
	m := newTestModel(t)
	text := `[{"id":0,"name":"Main room","walls":[[0,0,100,0],[100,0,100,100],[100,100,0,100],[0,100,0,0]],"tables":[],"subRooms":[{"id":1,"name":"Booth","walls":[[0,0,50,0],[50,0,50,50],[50,50,0,0]],"tables":[],"subRooms":[],"isTemporary":false}],"isTemporary":false}]`
	require.NoError(t, m.pasteLayout(text))
	assert.Equal(t, 2, m.editor.Layout().Count())
	assert.True(t, m.dirty)

	assert.Error(t, m.pasteLayout("hello"))
	assert.Equal(t, 2, m.editor.Layout().Count())
}

func TestViewShowsCursorAndStatus(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("w"))
	view := m.View()
	assert.Contains(t, view, string(cursorRune))
	assert.Contains(t, view, "Tool: wall/add")
	assert.Contains(t, view, "Rooms")

	m = send(t, m, key("?"))
	assert.Contains(t, m.View(), "Seatplan Help")
	m = send(t, m, key("j"))
	assert.Equal(t, 1, m.helpScroll)
	m = send(t, m, key("esc"))
	assert.False(t, m.help)
}
