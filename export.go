package main

import (
	"bufio"
	"os"
	"strings"
)

// exportVisualTXT writes the canvas as it is on screen, without the cursor,
// to filename.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	v := m.viewport()
	if v.cols < 1 {
		v.cols = 80
	}
	if v.rows < 1 {
		v.rows = 24
	}

	w := bufio.NewWriter(file)
	for _, line := range renderCanvas(m.editor.Snapshot(), v) {
		w.WriteString(strings.TrimRight(line, " "))
		w.WriteByte('\n')
	}
	return w.Flush()
}
