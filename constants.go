package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeRoomList
	ModePrompt
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmReset
	ConfirmDeleteRoom
	ConfirmOverwriteFile
	ConfirmPasteLayout
)

// PromptKind says what the text prompt is collecting.
type PromptKind int

const (
	PromptSeatCount PromptKind = iota
	PromptRoomName
	PromptCanvasSize
)

const (
	defaultCellWidth  = 10
	defaultCellHeight = 20

	roomListWidth = 28
)
