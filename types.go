package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"seatplan/pkg/editor"
)

type model struct {
	width    int
	height   int
	cursorX  int
	cursorY  int
	panX     int
	panY     int
	zPanMode bool

	editor   *editor.Editor
	filename string
	dirty    bool

	mode       Mode
	help       bool
	helpScroll int

	// Room list panel.
	roomIndex int

	prompt     PromptKind
	promptRoom int
	promptFrom Mode
	input      textinput.Model

	fileOp            FileOperation
	fileList          []string
	selectedFileIndex int

	confirmAction ConfirmAction
	confirmFrom   Mode
	confirmRoomID int
	confirmFile   string
	pasted        string

	errorMessage   string
	successMessage string

	config *Config
	logger *log.Logger
}

// cell is a terminal position on the canvas area.
type cell struct {
	X, Y int
}
