package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/system"
	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(rows [][]glyph) []string {
	out := make([]string, len(rows))
	for y, row := range rows {
		rs := make([]rune, len(row))
		for x, g := range row {
			rs[x] = g.r
		}
		out[y] = string(rs)
	}
	return out
}

func TestLayoutPrecedence(t *testing.T) {
	target := nav.Cell{X: 3, Y: 0}
	st := sim.State{
		X: 1.2, Y: 0.9,
		Waypoints: nav.Path{{X: 2, Y: 0}, {X: 3, Y: 0}},
		Target:    &target,
		Items:     []sim.Item{{Cell: nav.Cell{X: 2, Y: 0}}, {Cell: nav.Cell{X: 1, Y: 0}}},
	}

	assert.Equal(t, []string{
		" @*x",
		"    ",
		"    ",
		"    ",
	}, runes(layout(st, 4, defaultStyles())))
}

func TestLayoutHidesTargetWhenIdle(t *testing.T) {
	target := nav.Cell{X: 2, Y: 2}
	st := sim.State{X: 2, Y: 2, Waypoints: nav.Path{}, Target: &target}

	rows := layout(st, 3, defaultStyles())
	assert.Equal(t, []string{"   ", "   ", "  @"}, runes(rows))
	assert.Equal(t, defaultStyles().agent, rows[2][2].style)
}

func TestLayoutCheckers(t *testing.T) {
	sty := defaultStyles()
	rows := layout(sim.State{X: 1, Y: 1}, 2, sty)
	assert.Equal(t, sty.tile, rows[0][0].style)
	assert.Equal(t, sty.alt, rows[0][1].style)
	assert.Equal(t, sty.alt, rows[1][0].style)
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		col, row int
		want     nav.Cell
		ok       bool
	}{
		{0, 0, nav.Cell{}, true},
		{1, 0, nav.Cell{}, true},
		{2, 3, nav.Cell{X: 1, Y: 3}, true},
		{7, 3, nav.Cell{X: 3, Y: 3}, true},
		{8, 0, nav.Cell{}, false},
		{0, 4, nav.Cell{}, false},
		{-1, 0, nav.Cell{}, false},
	}
	for _, c := range cases {
		got, ok := cellAt(c.col, c.row, 4)
		assert.Equal(t, c.ok, ok, "col=%d row=%d", c.col, c.row)
		assert.Equal(t, c.want, got, "col=%d row=%d", c.col, c.row)
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 10)

	s, err := sim.New(sim.Config{
		GridSize:     4,
		Start:        nav.Cell{X: 1, Y: 1},
		Items:        []sim.Item{{Cell: nav.Cell{X: 3, Y: 2}, Kind: "gem"}},
		Speed:        0.5,
		TickInterval: 16 * time.Millisecond,
	})
	require.NoError(t, err)

	draw(screen, s.State(), 4, defaultStyles())

	r, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, glyphAgent, r)
	r, _, _, _ = screen.GetContent(6, 2)
	assert.Equal(t, glyphItem, r)
	r, _, _, _ = screen.GetContent(0, 5)
	assert.Equal(t, 't', r)
}

func TestCountType(t *testing.T) {
	events := []ecs.Event{
		{Type: system.EventWaypointReached},
		{Type: system.EventItemCollected},
		{Type: system.EventItemCollected},
	}
	assert.Equal(t, 2, countType(events, system.EventItemCollected))
	assert.Equal(t, 0, countType(nil, system.EventItemCollected))
}

func TestBellGeneratorDecays(t *testing.T) {
	g := NewBellGenerator(sampleRate, chimeFreq)
	samples := make([][2]float64, sampleRate.N(chimeLen))
	n, ok := g.Stream(samples)
	require.True(t, ok)
	require.Equal(t, len(samples), n)
	assert.NoError(t, g.Err())

	peak := func(s [][2]float64) float64 {
		m := 0.0
		for _, v := range s {
			if v[0] > m {
				m = v[0]
			}
			if -v[0] > m {
				m = -v[0]
			}
			if v[0] != v[1] {
				t.Fatalf("channels differ")
			}
		}
		return m
	}
	head := peak(samples[:n/4])
	tail := peak(samples[3*n/4:])
	assert.LessOrEqual(t, head, 1.0)
	assert.Less(t, tail, head/4)
}

func TestChimeSilentWithoutSpeaker(t *testing.T) {
	c := NewChime()
	c.Ring(3)
	c.Close()
}
