package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seatplan/pkg/geom"
	"seatplan/pkg/plan"
)

var (
	panelStyle = lipgloss.NewStyle().
			Width(roomListWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			PaddingLeft(1)
	panelTitle    = lipgloss.NewStyle().Bold(true)
	panelSelected = lipgloss.NewStyle().Reverse(true)
	panelDim      = lipgloss.NewStyle().Faint(true)
)

func (m *model) rooms() []plan.Entry {
	return m.editor.Layout().Listing()
}

func (m *model) selectedRoom() (plan.Entry, bool) {
	rooms := m.rooms()
	if m.roomIndex < 0 || m.roomIndex >= len(rooms) {
		return plan.Entry{}, false
	}
	return rooms[m.roomIndex], true
}

func (m *model) clampRoomIndex() {
	n := len(m.rooms())
	if m.roomIndex >= n {
		m.roomIndex = n - 1
	}
	if m.roomIndex < 0 {
		m.roomIndex = 0
	}
}

func (m *model) handleRoomListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "tab":
		m.mode = ModeNormal
	case "k", "up":
		if m.roomIndex > 0 {
			m.roomIndex--
		}
	case "j", "down":
		if m.roomIndex < len(m.rooms())-1 {
			m.roomIndex++
		}
	case "g":
		m.roomIndex = 0
	case "G":
		m.roomIndex = len(m.rooms()) - 1
	case "enter":
		m.focusSelectedRoom()
	case "e":
		room, ok := m.selectedRoom()
		if !ok {
			return nil
		}
		if room.ID == plan.RootID {
			m.errorMessage = "the main room cannot be renamed"
			return nil
		}
		return m.openPrompt(PromptRoomName, room.ID, room.Name)
	case "D", "delete":
		room, ok := m.selectedRoom()
		if !ok {
			return nil
		}
		if room.ID == plan.RootID {
			m.errorMessage = "the main room cannot be deleted"
			return nil
		}
		if m.config.Confirmations {
			m.confirmRoomID = room.ID
			m.confirm(ConfirmDeleteRoom)
			return nil
		}
		m.deleteRoom(room.ID)
	case "?":
		m.help = true
	}
	m.clampRoomIndex()
	return nil
}

func (m *model) deleteRoom(id int) {
	if err := m.editor.DeleteRoom(id); err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.clampRoomIndex()
	m.successMessage = fmt.Sprintf("Deleted room %d", id)
}

// focusSelectedRoom pans the canvas to the middle of the highlighted room.
func (m *model) focusSelectedRoom() {
	entry, ok := m.selectedRoom()
	if !ok {
		return
	}
	room, ok := m.editor.Layout().Find(entry.ID)
	if !ok || len(room.Walls) == 0 {
		return
	}
	v := m.viewport()
	c := geom.Centroid(room.Polygon())
	m.centerOn(cell{
		X: int(c.X/v.cellW + 0.5),
		Y: int(c.Y/v.cellH + 0.5),
	})
	m.mode = ModeNormal
}

// renderRoomList draws the room tree panel at the given height.
func (m *model) renderRoomList(height int) string {
	var b strings.Builder
	b.WriteString(panelTitle.Render("Rooms"))
	b.WriteString("\n")

	rooms := m.rooms()
	for i, r := range rooms {
		if i+2 > height {
			break
		}
		label := fmt.Sprintf("%s%s (%d)", strings.Repeat("  ", r.Depth), r.Name, r.Tables)
		if len([]rune(label)) > roomListWidth-2 {
			label = string([]rune(label)[:roomListWidth-3]) + "…"
		}
		switch {
		case m.mode == ModeRoomList && i == m.roomIndex:
			label = panelSelected.Render(label)
		case r.ID == plan.RootID:
			label = panelDim.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return panelStyle.Height(height).MaxHeight(height).Render(strings.TrimRight(b.String(), "\n"))
}
