package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"surrounding whitespace", "\r\n[1,\r\n2]\r\n", "[1,\r\n2]"},
		{"control chars", "[\x00\x07]", "[]"},
		{"byte order mark", "\ufeff[]", "[]"},
		{"tabs kept", "[\t1]", "[\t1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanClipboardText(tt.in))
		})
	}
}

func TestPasteCleanedLayout(t *testing.T) {
	m := newTestModel(t)
	text := cleanClipboardText("\ufeff[{\"id\":0,\"name\":\"Main room\"},\x00{\"id\":1,\"name\":\"Patio\"}]\n")
	require.NoError(t, m.pasteLayout(text))
	assert.Equal(t, 2, m.editor.Layout().Count())
	assert.True(t, m.dirty)
}
