package main

import (
	"path/filepath"
	"testing"

	"github.com/milk9111/gridwalk/levels"
	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentEditAndUndo(t *testing.T) {
	doc := NewDocument(6)

	assert.True(t, doc.Apply(ToolItem, nav.Cell{X: 2, Y: 2}, "gem"))
	assert.False(t, doc.Apply(ToolItem, nav.Cell{X: 2, Y: 2}, "gem"), "same item twice")
	assert.True(t, doc.Apply(ToolItem, nav.Cell{X: 2, Y: 2}, "apple"))
	assert.True(t, doc.Apply(ToolSpawn, nav.Cell{X: 5, Y: 5}, ""))
	assert.False(t, doc.Apply(ToolItem, nav.Cell{X: 6, Y: 0}, "gem"), "off board")

	lvl := doc.Level()
	assert.Equal(t, nav.Cell{X: 5, Y: 5}, lvl.Spawn())
	assert.Len(t, lvl.Items(), 2)
	assert.True(t, doc.Dirty())

	assert.True(t, doc.Apply(ToolErase, nav.Cell{X: 2, Y: 2}, ""))
	assert.Len(t, doc.Level().Items(), 1)

	require.True(t, doc.Undo())
	assert.Len(t, doc.Level().Items(), 2)
	require.True(t, doc.Undo())
	assert.Equal(t, nav.Cell{}, doc.Level().Spawn())
	require.True(t, doc.Undo())
	require.True(t, doc.Undo())
	assert.Empty(t, doc.Level().Items())
	assert.False(t, doc.Undo())
}

func TestDocumentSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")

	doc := NewDocument(sim.DefaultGridSize)
	require.NoError(t, doc.Load(path))
	doc.Apply(ToolSpawn, nav.Cell{X: 1, Y: 1}, "")
	doc.Apply(ToolItem, nav.Cell{X: 3, Y: 4}, "pear")
	doc.Apply(ToolItem, nav.Cell{X: 9, Y: 9}, levels.DefaultItemKind)
	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty())

	again := NewDocument(4)
	require.NoError(t, again.Load(path))
	lvl := again.Level()
	assert.Equal(t, sim.DefaultGridSize, lvl.Width)
	assert.Equal(t, nav.Cell{X: 1, Y: 1}, lvl.Spawn())
	assert.Equal(t, []sim.Item{
		{Cell: nav.Cell{X: 3, Y: 4}, Kind: "pear"},
		{Cell: nav.Cell{X: 9, Y: 9}, Kind: levels.DefaultItemKind},
	}, lvl.Items())

	cfg, err := lvl.Config(sim.DefaultConfig())
	require.NoError(t, err)
	_, err = sim.New(cfg)
	assert.NoError(t, err)
}
