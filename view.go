package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seatplan/pkg/editor"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	v := m.viewport()
	if v.cols < 1 || v.rows < 1 {
		return m.statusLine()
	}
	lines := renderCanvas(m.editor.Snapshot(), v)
	if m.mode != ModeRoomList && m.cursorY < len(lines) {
		row := []rune(lines[m.cursorY])
		if m.cursorX < len(row) {
			row[m.cursorX] = cursorRune
		}
		lines[m.cursorY] = string(row)
	}

	canvas := strings.Join(lines, "\n")
	if m.showRoomList() {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.renderRoomList(v.rows))
	}
	return canvas + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModePrompt, ModeFileInput:
		line := m.input.View()
		if m.mode == ModeFileInput && m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			line += fmt.Sprintf("  (%d/%d, ↑/↓ to browse)", m.selectedFileIndex+1, len(m.fileList))
		}
		if m.errorMessage != "" {
			line += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return line
	case ModeConfirm:
		return "Mode: CONFIRM | " + m.confirmMessage()
	}

	modeStr := m.modeString()
	if m.zPanMode {
		modeStr = "PAN"
	}
	p := m.cursorWorld()
	status := fmt.Sprintf("Mode: %s | Tool: %s | Shape: %s | (%.0f,%.0f)",
		modeStr, toolString(m.editor.Tool()), m.editor.Shape(), p.X, p.Y)
	if m.filename != "" {
		name := filepath.Base(m.filename)
		if m.dirty {
			name += "*"
		}
		status += " | " + name
	}
	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit? Unsaved changes will be lost. (y/n)"
	case ConfirmReset:
		return "Start a new layout? Unsaved changes will be lost. (y/n)"
	case ConfirmDeleteRoom:
		name := fmt.Sprintf("room %d", m.confirmRoomID)
		if r, ok := m.editor.Layout().Find(m.confirmRoomID); ok {
			name = r.Name
		}
		return fmt.Sprintf("Delete %s? Its tables move to the enclosing room. (y/n)", name)
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.confirmFile)
	case ConfirmPasteLayout:
		return "Replace the layout with the clipboard contents? (y/n)"
	}
	return "(y/n)"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeRoomList:
		return "ROOMS"
	case ModePrompt:
		return "PROMPT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func toolString(t editor.Tool) string {
	switch t := t.(type) {
	case editor.WallTool:
		s := "wall/" + t.Mode.String()
		if t.First != nil {
			s += fmt.Sprintf(" from (%.0f,%.0f)", t.First.X, t.First.Y)
		}
		return s
	case editor.TableTool:
		s := "table/" + t.Mode.String()
		if t.Selected != nil {
			s += fmt.Sprintf(" [%.0f,%.0f]", t.Selected.X, t.Selected.Y)
		}
		return s
	case editor.RoomTool:
		return fmt.Sprintf("room (%d points)", len(t.Points))
	}
	return "none"
}

var helpLines = []string{
	"Seatplan Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor",
	"  Shift+h/j/k/l    Move cursor a whole grid unit",
	"  z                Toggle pan mode (arrows scroll the view)",
	"  Mouse wheel      Scroll up/down",
	"",
	"Clicking:",
	"---------",
	"  Enter/Space      Click at the cursor",
	"  Left mouse       Click at the pointer",
	"  Esc              Drop the current tool",
	"",
	"Walls:",
	"------",
	"  w                Wall tool, click both ends of a wall",
	"  W                Toggle between adding and deleting walls",
	"",
	"Tables:",
	"-------",
	"  t                Table tool",
	"  1                Add a table (snaps to the grid)",
	"  2                Delete the table clicked",
	"  3                Move: click a table, then its new spot",
	"  4                Merge: click two tables to join them",
	"  5                Chairs: click a chair side to toggle it;",
	"                   round tables ask for a seat count",
	"  f                Cycle table shape (square, diamond, round)",
	"",
	"Rooms:",
	"------",
	"  r                Room tool, click corners and then the first",
	"                   corner again to close the room",
	"  e                Rename the room under the cursor",
	"  D                Delete the room under the cursor",
	"  Tab              Room list (j/k select, Enter focus,",
	"                   e rename, D delete, Esc back)",
	"  x                Start a new layout",
	"",
	"Files:",
	"------",
	"  s                Save layout as JSON",
	"  o                Open a JSON layout",
	"  P                Export as PNG image",
	"  T                Export the canvas as text",
	"  y                Copy layout JSON to the clipboard",
	"  p                Import layout JSON from the clipboard",
	"",
	"General:",
	"--------",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(0, len(helpLines)-visibleHeight)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
