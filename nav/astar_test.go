package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathAllPairsOpenGrid(t *testing.T) {
	const size = 12
	g := NewGrid(size)

	for sy := 0; sy < size; sy++ {
		for sx := 0; sx < size; sx++ {
			start := Cell{X: sx, Y: sy}
			for gy := 0; gy < size; gy++ {
				for gx := 0; gx < size; gx++ {
					goal := Cell{X: gx, Y: gy}
					path, err := g.FindPath(start, goal)
					if err != nil {
						t.Fatalf("FindPath(%v, %v): %v", start, goal, err)
					}
					if start == goal {
						if len(path) != 1 || path[0] != goal {
							t.Fatalf("FindPath(%v, %v) = %v, want [%v]", start, goal, path, goal)
						}
						continue
					}
					if len(path) != start.Manhattan(goal) {
						t.Fatalf("FindPath(%v, %v) length %d, want %d", start, goal, len(path), start.Manhattan(goal))
					}
					if !start.Adjacent(path[0]) {
						t.Fatalf("FindPath(%v, %v) first step %v not adjacent", start, goal, path[0])
					}
					if last, _ := path.Last(); last != goal {
						t.Fatalf("FindPath(%v, %v) ends at %v", start, goal, last)
					}
					if !path.Contiguous(start) {
						t.Fatalf("FindPath(%v, %v) = %v is not contiguous", start, goal, path)
					}
					for _, c := range path {
						if !g.InBounds(c) {
							t.Fatalf("FindPath(%v, %v) left the grid at %v", start, goal, c)
						}
					}
				}
			}
		}
	}
}

func TestFindPathTieBreakIsStable(t *testing.T) {
	g := NewGrid(12)

	path, visited, err := g.Search(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, Path{{X: 1, Y: 0}, {X: 1, Y: 1}}, path)
	assert.Equal(t, []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, visited)
}

func TestFindPathDeterministic(t *testing.T) {
	g := NewGrid(12)
	cases := []struct {
		start Cell
		goal  Cell
	}{
		{Cell{0, 0}, Cell{4, 2}},
		{Cell{11, 11}, Cell{0, 0}},
		{Cell{3, 9}, Cell{10, 1}},
		{Cell{6, 6}, Cell{6, 0}},
	}

	for _, c := range cases {
		first, err := g.FindPath(c.start, c.goal)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := g.FindPath(c.start, c.goal)
			require.NoError(t, err)
			assert.Equal(t, first, again, "run %d for %v -> %v", i, c.start, c.goal)
		}
	}
}

func TestFindPathExampleScenario(t *testing.T) {
	g := NewGrid(12)
	path, err := g.FindPath(Cell{X: 0, Y: 0}, Cell{X: 4, Y: 2})
	require.NoError(t, err)
	assert.Len(t, path, 6)
	last, ok := path.Last()
	require.True(t, ok)
	assert.Equal(t, Cell{X: 4, Y: 2}, last)
}

func TestFindPathInvalidCells(t *testing.T) {
	g := NewGrid(12)
	cases := []struct {
		name  string
		start Cell
		goal  Cell
	}{
		{"start_negative", Cell{X: -1, Y: 0}, Cell{X: 3, Y: 3}},
		{"start_too_large", Cell{X: 0, Y: 12}, Cell{X: 3, Y: 3}},
		{"goal_negative", Cell{X: 0, Y: 0}, Cell{X: 3, Y: -4}},
		{"goal_too_large", Cell{X: 0, Y: 0}, Cell{X: 12, Y: 11}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path, visited, err := g.Search(c.start, c.goal)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCell))
			assert.Nil(t, path)
			assert.Empty(t, visited)
		})
	}

	var empty *Grid
	_, err := empty.FindPath(Cell{}, Cell{})
	assert.ErrorIs(t, err, ErrInvalidCell)
}

func TestFindPathUnreachableTerminates(t *testing.T) {
	const size = 8
	// wall off column 4 completely
	g := NewGrid(size)
	g.Blocked = func(c Cell) bool { return c.X == 4 }

	path, visited, err := g.Search(Cell{X: 0, Y: 0}, Cell{X: 7, Y: 7})
	require.ErrorIs(t, err, ErrNoPath)
	assert.Nil(t, path)
	assert.LessOrEqual(t, len(visited), size*size)
	// everything left of the wall is reachable and expanded exactly once
	assert.Len(t, visited, 4*size)

	seen := make(map[Cell]bool, len(visited))
	for _, c := range visited {
		assert.False(t, seen[c], "cell %v expanded twice", c)
		seen[c] = true
	}
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := NewGrid(4)
	g.Blocked = func(c Cell) bool { return c == Cell{X: 2, Y: 2} }

	_, err := g.FindPath(Cell{X: 0, Y: 0}, Cell{X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindPathDetoursAroundBlockedCells(t *testing.T) {
	g := NewGrid(5)
	// a wall on x=2 with a gap at y=4
	g.Blocked = func(c Cell) bool { return c.X == 2 && c.Y < 4 }

	start := Cell{X: 0, Y: 0}
	goal := Cell{X: 4, Y: 0}
	path, err := g.FindPath(start, goal)
	require.NoError(t, err)
	assert.True(t, path.Contiguous(start))
	assert.Len(t, path, 12)
	for _, c := range path {
		assert.False(t, g.Blocked(c), "path crosses blocked cell %v", c)
	}
}

func TestFindPathMaxNodes(t *testing.T) {
	g := NewGrid(12)
	g.MaxNodes = 3

	_, visited, err := g.Search(Cell{X: 0, Y: 0}, Cell{X: 11, Y: 11})
	require.ErrorIs(t, err, ErrNoPath)
	assert.Len(t, visited, 3)
}

func TestExpansionsBoundedByGridArea(t *testing.T) {
	for _, size := range []int{1, 2, 5, 12} {
		g := NewGrid(size)
		g.MaxNodes = 0
		goal := Cell{X: size - 1, Y: size - 1}
		_, visited, err := g.Search(Cell{}, goal)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(visited), size*size)
	}
}

func TestFloor(t *testing.T) {
	assert.Equal(t, Cell{X: 2, Y: 0}, Floor(2.85, 0.0))
	assert.Equal(t, Cell{X: 4, Y: 1}, Floor(4.0, 1.99))
	assert.Equal(t, Cell{X: -1, Y: 0}, Floor(-0.1, 0.5))
}

func TestPathContiguous(t *testing.T) {
	start := Cell{X: 1, Y: 1}
	assert.True(t, Path{}.Contiguous(start))
	assert.True(t, Path{start}.Contiguous(start))
	assert.True(t, Path{{X: 2, Y: 1}, {X: 2, Y: 2}}.Contiguous(start))
	assert.False(t, Path{{X: 2, Y: 2}}.Contiguous(start))
	assert.False(t, Path{{X: 2, Y: 1}, {X: 4, Y: 1}}.Contiguous(start))
}
