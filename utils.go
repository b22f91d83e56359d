package main

import (
	"bytes"
	"strings"

	"github.com/atotto/clipboard"

	"seatplan/pkg/errors"
)

func userMessage(err error) string {
	return errors.UserMessage(err)
}

func (m *model) setError(err error) {
	m.successMessage = ""
	m.errorMessage = userMessage(err)
	m.logger.Debug("rejected", "code", errors.GetCode(err), "err", err)
}

// copyLayoutToClipboard puts the exported JSON on the system clipboard.
func (m *model) copyLayoutToClipboard() error {
	var buf bytes.Buffer
	if err := m.editor.Export(&buf); err != nil {
		return err
	}
	return clipboard.WriteAll(buf.String())
}

func (m *model) pasteLayout(text string) error {
	if err := m.editor.Import(strings.NewReader(text)); err != nil {
		return err
	}
	m.dirty = true
	m.roomIndex = 0
	return nil
}

// readClipboardLayout returns the clipboard text ready to be decoded.
func readClipboardLayout() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

// cleanClipboardText drops a leading byte order mark and the control
// characters JSON does not allow outside strings.
func cleanClipboardText(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}
