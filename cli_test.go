package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatplan/pkg/editor"
	"seatplan/pkg/plan"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	config := filepath.Join(t.TempDir(), "missing.toml")
	cmd.SetArgs(append([]string{"--config", config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewInspectRender(t *testing.T) {
	dir := t.TempDir()
	layout := filepath.Join(dir, "plan.json")

	_, err := runCLI(t, "new", "-o", layout, "--width", "400", "--height", "300")
	require.NoError(t, err)
	written, err := readLayout(layout)
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, plan.Wall{400, 0, 400, 300}, written[0].Walls[1])

	_, err = runCLI(t, "new", "-o", layout)
	assert.Error(t, err)
	_, err = runCLI(t, "new", "-o", layout, "--force")
	assert.NoError(t, err)

	out, err := runCLI(t, "inspect", layout)
	require.NoError(t, err)
	assert.Contains(t, out, "Main room")
	assert.Contains(t, out, "1 rooms, 0 tables, 0 seats")

	png := filepath.Join(dir, "plan.png")
	_, err = runCLI(t, "render", layout, "--scale", "0.5")
	require.NoError(t, err)
	assert.FileExists(t, png)
}

func TestInspectRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))
	_, err := runCLI(t, "inspect", path)
	assert.Error(t, err)
}

func TestGridMustBePositive(t *testing.T) {
	_, err := runCLI(t, "inspect", "whatever.json", "--grid", "-1")
	assert.Error(t, err)
}

func TestTableShapeOption(t *testing.T) {
	_, err := runCLI(t, "inspect", "whatever.json", "--shape", "hexagon")
	assert.Error(t, err)

	dir := t.TempDir()
	config := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(config, []byte(`table_shape = "round"`), 0644))

	opts := &globalOpts{configFile: config}
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.shape, "shape", "", "")
	require.NoError(t, opts.load(cmd, log.New(io.Discard)))
	assert.Equal(t, plan.Round, opts.newEditor(nil).Shape())

	require.NoError(t, cmd.Flags().Set("shape", "Diamond"))
	require.NoError(t, opts.load(cmd, log.New(io.Discard)))
	ed := opts.newEditor(nil)
	assert.Equal(t, plan.Diamond, ed.Shape())
	require.NoError(t, ed.SelectTool(editor.KindTable))
	require.NoError(t, ed.Click(500, 400))
	root, ok := ed.Layout().Root()
	require.True(t, ok)
	require.Len(t, root.Tables, 1)
	assert.Equal(t, plan.Diamond, root.Tables[0].Type)
}
