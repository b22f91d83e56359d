package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"seatplan/pkg/render"
)

func extensionFor(op FileOperation) string {
	switch op {
	case FileOpSavePNG:
		return ".png"
	case FileOpSaveVisualTXT:
		return ".txt"
	}
	return ".json"
}

// scanLayoutFiles lists the .json files in dir, sorted.
func scanLayoutFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files
}

func (m *model) startFileInput(op FileOperation) tea.Cmd {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.fileList = nil
	m.selectedFileIndex = -1

	name := ""
	if m.filename != "" {
		name = strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	}
	if op == FileOpOpen {
		m.fileList = scanLayoutFiles(m.config.listDir())
		name = ""
		if len(m.fileList) > 0 {
			m.selectedFileIndex = 0
			name = strings.TrimSuffix(m.fileList[0], ".json")
		}
	}

	m.input = newInput(fileOpLabel(op)+": ", name)
	return m.input.Focus()
}

func fileOpLabel(op FileOperation) string {
	switch op {
	case FileOpOpen:
		return "Open"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveVisualTXT:
		return "Export TXT"
	}
	return "Save"
}

func (m *model) moveFileSelection(delta int) {
	if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
		return
	}
	m.selectedFileIndex = (m.selectedFileIndex + delta + len(m.fileList)) % len(m.fileList)
	m.input.SetValue(strings.TrimSuffix(m.fileList[m.selectedFileIndex], ".json"))
	m.input.CursorEnd()
}

// resolveFilename adds the extension for op and places relative names in the
// save directory.
func (m *model) resolveFilename(name string, op FileOperation) string {
	ext := extensionFor(op)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	if op == FileOpOpen {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(m.config.listDir(), name)
	}
	return m.config.SavePath(name)
}

func (m *model) submitFileInput() tea.Cmd {
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return nil
	}
	filename := m.resolveFilename(name, m.fileOp)

	if m.fileOp != FileOpOpen {
		if _, err := os.Stat(filename); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.confirmFile = filename
			return nil
		}
	}
	if err := m.runFileOp(m.fileOp, filename); err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	m.mode = ModeNormal
	return nil
}

func (m *model) runFileOp(op FileOperation, filename string) error {
	abs, _ := filepath.Abs(filename)
	switch op {
	case FileOpSave:
		if err := m.saveLayout(filename); err != nil {
			return fmt.Errorf("Error saving file: %s", err)
		}
		m.filename = filename
		m.dirty = false
		m.successMessage = fmt.Sprintf("Saved to %s", abs)
	case FileOpOpen:
		if err := m.openLayout(filename); err != nil {
			return fmt.Errorf("Error opening file: %s", userMessage(err))
		}
		m.filename = filename
		m.dirty = false
		m.roomIndex = 0
		m.successMessage = fmt.Sprintf("Opened %s", abs)
	case FileOpSavePNG:
		opts := render.Options{Grid: m.editor.Grid(), Scale: 1, ShowGrid: true}
		if err := render.SavePNG(filename, m.editor.Layout(), opts); err != nil {
			return fmt.Errorf("Error exporting PNG: %s", userMessage(err))
		}
		m.successMessage = fmt.Sprintf("Exported to %s", abs)
	case FileOpSaveVisualTXT:
		if err := m.exportVisualTXT(filename); err != nil {
			return fmt.Errorf("Error exporting TXT: %s", err)
		}
		m.successMessage = fmt.Sprintf("Exported to %s", abs)
	}
	m.errorMessage = ""
	m.logger.Info("file operation", "op", fileOpLabel(op), "path", abs)
	return nil
}

func (m *model) saveLayout(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return m.editor.Export(file)
}

func (m *model) openLayout(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return m.editor.Import(file)
}
