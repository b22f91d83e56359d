package main

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

// handlePan scrolls the view; the cursor keeps its screen cell.
func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "k", "up", "K", "shift+up":
		m.panY -= speed
	case "j", "down", "J", "shift+down":
		m.panY += speed
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

// getMoveSpeed moves a whole grid unit per step when shift is held.
func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "shift+left", "shift+right":
		return max(1, int(m.editor.Grid())/m.config.CellWidth)
	case "K", "J", "shift+up", "shift+down":
		return max(1, int(m.editor.Grid())/m.config.CellHeight)
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	v := m.viewport()
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if v.cols > 0 && m.cursorX >= v.cols {
		m.cursorX = v.cols - 1
	}
	if v.rows > 0 && m.cursorY >= v.rows {
		m.cursorY = v.rows - 1
	}
}

func (m *model) showRoomList() bool {
	return m.width >= roomListWidth+40
}

// viewport is the canvas area: the full width minus the room list panel, and
// the full height minus the status line.
func (m *model) viewport() viewport {
	cols := m.width
	if m.showRoomList() {
		cols -= roomListWidth + 1
	}
	return viewport{
		cols:  cols,
		rows:  m.height - 1,
		panX:  m.panX,
		panY:  m.panY,
		cellW: float64(m.config.CellWidth),
		cellH: float64(m.config.CellHeight),
	}
}

// centerOn pans so that cell c of the world grid sits mid-canvas.
func (m *model) centerOn(c cell) {
	v := m.viewport()
	m.panX = c.X - v.cols/2
	m.panY = c.Y - v.rows/2
	m.cursorX, m.cursorY = v.cols/2, v.rows/2
	m.ensureCursorInBounds()
}
