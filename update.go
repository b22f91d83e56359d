package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"seatplan/pkg/editor"
	"seatplan/pkg/errors"
	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

func newModel(ed *editor.Editor, config *Config, logger *log.Logger, filename string) model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return model{
		editor:            ed,
		filename:          filename,
		selectedFileIndex: -1,
		config:            config,
		logger:            logger,
		input:             textinput.New(),
	}
}

func newInput(prompt, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 256
	input.SetValue(value)
	input.CursorEnd()
	return input
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}
		switch m.mode {
		case ModeRoomList:
			cmd = m.handleRoomListKey(msg)
		case ModePrompt:
			cmd = m.handlePromptKey(msg)
		case ModeFileInput:
			cmd = m.handleFileInputKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg.String())
		default:
			cmd = m.handleNormalKey(msg.String())
		}

	default:
		if m.mode == ModePrompt || m.mode == ModeFileInput {
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, cmd
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

// handleMouse turns a left press on the canvas into a click at that cell and
// a press on the room list into a selection. The wheel pans.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.help || m.mode == ModeConfirm || m.mode == ModeFileInput || m.mode == ModePrompt {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY--
		return nil
	case tea.MouseButtonWheelDown:
		m.panY++
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	v := m.viewport()
	at := cell{X: msg.X, Y: msg.Y}
	if v.contains(at) {
		if m.mode == ModeRoomList {
			m.mode = ModeNormal
		}
		m.cursorX, m.cursorY = at.X, at.Y
		return m.click()
	}
	if m.showRoomList() && msg.X > v.cols && msg.Y >= 1 {
		if i := msg.Y - 1; i < len(m.rooms()) {
			m.mode = ModeRoomList
			m.roomIndex = i
		}
	}
	return nil
}

func (m *model) cursorWorld() geom.Point {
	return m.viewport().toWorld(m.cursorX, m.cursorY)
}

// click sends a click at the cursor to the editor and opens the seat prompt
// when a round table asks for one.
func (m *model) click() tea.Cmd {
	before := m.editor.Layout().Count()
	p := m.cursorWorld()
	if err := m.editor.Click(p.X, p.Y); err != nil {
		m.setError(err)
		return nil
	}
	m.errorMessage = ""
	m.successMessage = ""
	m.dirty = true
	if after := m.editor.Layout().Count(); after > before {
		m.successMessage = fmt.Sprintf("Room created (%d rooms)", after)
	}
	if m.editor.Prompting() {
		return m.openPrompt(PromptSeatCount, -1, "")
	}
	return nil
}

func (m *model) openPrompt(kind PromptKind, roomID int, value string) tea.Cmd {
	label := "Seats (2-8): "
	switch kind {
	case PromptRoomName:
		label = "Room name: "
	case PromptCanvasSize:
		label = "Canvas size (WIDTHxHEIGHT): "
	}
	m.promptFrom = m.mode
	m.mode = ModePrompt
	m.prompt = kind
	m.promptRoom = roomID
	m.input = newInput(label, value)
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *model) closePrompt() {
	m.input.Blur()
	m.mode = m.promptFrom
}

func (m *model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.prompt == PromptSeatCount {
			m.editor.CancelPrompt()
		}
		m.closePrompt()
		return nil
	case "enter":
		value := m.input.Value()
		if m.prompt == PromptCanvasSize {
			return m.submitCanvasSize(value)
		}
		var err error
		if m.prompt == PromptSeatCount {
			err = m.editor.SubmitSeatCount(value)
		} else {
			err = m.editor.RenameRoom(m.promptRoom, value)
		}
		if err != nil {
			m.setError(err)
			return nil
		}
		m.errorMessage = ""
		m.dirty = true
		if m.prompt == PromptSeatCount {
			m.successMessage = "Seats updated"
		} else {
			m.successMessage = fmt.Sprintf("Renamed to %q", strings.TrimSpace(value))
		}
		m.closePrompt()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitCanvasSize sets the size the main room gets on the next new layout.
// A pristine layout is rebuilt at the new size straight away.
func (m *model) submitCanvasSize(value string) tea.Cmd {
	width, height, err := parseCanvasSize(value)
	if err == nil {
		err = m.editor.SetCanvasSize(width, height)
	}
	if err != nil {
		m.setError(err)
		return nil
	}
	m.closePrompt()
	if !m.dirty && m.filename == "" {
		m.reset()
		m.successMessage = fmt.Sprintf("Canvas %gx%g", width, height)
		return nil
	}
	m.report(nil, fmt.Sprintf("Canvas %gx%g, press x to start a layout at this size", width, height))
	return nil
}

// parseCanvasSize reads "WIDTHxHEIGHT", e.g. "1200x900".
func parseCanvasSize(s string) (float64, float64, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "canvas size must look like 1000x800")
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "width %q is not a number", w)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "height %q is not a number", h)
	}
	return width, height, nil
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		m.input.Blur()
		return nil
	case "enter":
		return m.submitFileInput()
	case "up":
		m.moveFileSelection(-1)
		return nil
	case "down":
		m.moveFileSelection(1)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) handleConfirmKey(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmReset:
			m.reset()
		case ConfirmDeleteRoom:
			m.deleteRoom(m.confirmRoomID)
			m.mode = m.confirmFrom
			return nil
		case ConfirmOverwriteFile:
			if err := m.runFileOp(m.fileOp, m.confirmFile); err != nil {
				m.errorMessage = err.Error()
				m.mode = ModeFileInput
				return nil
			}
		case ConfirmPasteLayout:
			if err := m.pasteLayout(m.pasted); err != nil {
				m.setError(err)
			} else {
				m.successMessage = "Layout pasted from clipboard"
			}
			m.pasted = ""
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		switch m.confirmAction {
		case ConfirmOverwriteFile:
			m.mode = ModeFileInput
		case ConfirmDeleteRoom:
			m.mode = m.confirmFrom
		default:
			m.mode = ModeNormal
		}
		m.pasted = ""
	}
	return nil
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmFrom = m.mode
	m.mode = ModeConfirm
	m.confirmAction = action
}

func (m *model) reset() {
	m.editor.Reset()
	m.filename = ""
	m.dirty = false
	m.roomIndex = 0
	m.panX, m.panY = 0, 0
	m.errorMessage = ""
	m.successMessage = "Started a new layout"
}

func (m *model) report(err error, success string) {
	if err != nil {
		m.setError(err)
		return
	}
	m.errorMessage = ""
	m.successMessage = success
}

// roomUnderCursor is the innermost room at the cursor, skipping the main room.
func (m *model) roomUnderCursor() (plan.Room, bool) {
	layout := m.editor.Layout()
	id, ok := layout.RoomAt(m.cursorWorld())
	if !ok || id == plan.RootID {
		return plan.Room{}, false
	}
	return layout.Find(id)
}

func (m *model) handleNormalKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		if m.dirty && m.config.Confirmations {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		if m.zPanMode {
			m.zPanMode = false
			return nil
		}
		m.report(m.editor.SelectTool(editor.KindNone), "No tool")
	case "z":
		m.zPanMode = !m.zPanMode
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "enter", " ":
		return m.click()

	case "w":
		m.report(m.editor.SelectTool(editor.KindWall), "Wall tool")
	case "W":
		mode := editor.WallDelete
		if wt, ok := m.editor.Tool().(editor.WallTool); ok && wt.Mode == editor.WallDelete {
			mode = editor.WallAdd
		}
		m.report(m.editor.SelectWallMode(mode), "Wall tool: "+mode.String())
	case "t":
		m.report(m.editor.SelectTool(editor.KindTable), "Table tool")
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(key)
		mode := editor.TableModes[n-1]
		m.report(m.editor.SelectTableMode(mode), "Table tool: "+mode.String())
	case "f":
		shape := nextShape(m.editor.Shape())
		m.editor.SetTableShape(shape)
		m.report(nil, "Table shape: "+shape.String())
	case "r":
		m.report(m.editor.SelectTool(editor.KindRoom), "Room tool: click the first corner again to close")

	case "tab":
		m.mode = ModeRoomList
		m.clampRoomIndex()
	case "e":
		room, ok := m.roomUnderCursor()
		if !ok {
			m.errorMessage = "no room under the cursor"
			return nil
		}
		return m.openPrompt(PromptRoomName, room.ID, room.Name)
	case "D":
		room, ok := m.roomUnderCursor()
		if !ok {
			m.errorMessage = "no room under the cursor"
			return nil
		}
		if m.config.Confirmations {
			m.confirmRoomID = room.ID
			m.confirm(ConfirmDeleteRoom)
			return nil
		}
		m.deleteRoom(room.ID)
	case "c":
		width, height := m.editor.CanvasSize()
		return m.openPrompt(PromptCanvasSize, -1, fmt.Sprintf("%gx%g", width, height))
	case "x":
		if m.config.Confirmations {
			m.confirm(ConfirmReset)
			return nil
		}
		m.reset()

	case "s":
		return m.startFileInput(FileOpSave)
	case "o":
		return m.startFileInput(FileOpOpen)
	case "P":
		return m.startFileInput(FileOpSavePNG)
	case "T":
		return m.startFileInput(FileOpSaveVisualTXT)
	case "y":
		m.report(m.copyLayoutToClipboard(), "Layout copied to clipboard")
	case "p":
		text, err := readClipboardLayout()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err)
			return nil
		}
		if text == "" {
			m.errorMessage = "Clipboard is empty"
			return nil
		}
		if m.config.Confirmations && m.dirty {
			m.pasted = text
			m.confirm(ConfirmPasteLayout)
			return nil
		}
		m.report(m.pasteLayout(text), "Layout pasted from clipboard")
	}
	return nil
}

func nextShape(s plan.TableType) plan.TableType {
	for i, t := range plan.TableTypes {
		if t == s {
			return plan.TableTypes[(i+1)%len(plan.TableTypes)]
		}
	}
	return plan.TableTypes[0]
}
