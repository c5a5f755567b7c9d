package nav

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCell = errors.New("nav: cell out of bounds")
	ErrNoPath      = errors.New("nav: no path found")
)

// Grid bounds an A* search over 4-connected cells.
type Grid struct {
	Width  int
	Height int
	// MaxNodes limits the number of expanded cells to avoid runaway searches.
	// Zero or anything above Width*Height means Width*Height.
	MaxNodes int
	// Blocked returns true for cells that cannot be traversed. Nil is an
	// open grid.
	Blocked func(c Cell) bool
}

// NewGrid returns an open size x size grid.
func NewGrid(size int) *Grid {
	return &Grid{Width: size, Height: size, MaxNodes: size * size}
}

func (g *Grid) InBounds(c Cell) bool {
	return g != nil && c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

var neighborOffsets = [...]Cell{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

const (
	nodeUnseen byte = iota
	nodeOpen
	nodeClosed
)

// FindPath returns the shortest path from start to goal, excluding start and
// including goal. When start == goal the path is just the goal.
func (g *Grid) FindPath(start, goal Cell) (Path, error) {
	path, _, err := g.Search(start, goal)
	return path, err
}

// Search is FindPath that also reports the expanded cells in expansion order.
func (g *Grid) Search(start, goal Cell) (Path, []Cell, error) {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: empty grid", ErrInvalidCell)
	}
	if !g.InBounds(start) {
		return nil, nil, fmt.Errorf("%w: start %v outside %dx%d", ErrInvalidCell, start, g.Width, g.Height)
	}
	if !g.InBounds(goal) {
		return nil, nil, fmt.Errorf("%w: goal %v outside %dx%d", ErrInvalidCell, goal, g.Width, g.Height)
	}
	if start == goal {
		return Path{goal}, []Cell{start}, nil
	}
	if g.blocked(goal) {
		return nil, nil, fmt.Errorf("%w: goal %v is blocked", ErrNoPath, goal)
	}

	size := g.Width * g.Height
	maxNodes := g.MaxNodes
	if maxNodes <= 0 || maxNodes > size {
		maxNodes = size
	}

	startIdx := g.index(start)
	goalIdx := g.index(goal)

	gScore := make([]int, size)
	cameFrom := make([]int, size)
	for i := range gScore {
		gScore[i] = -1
		cameFrom[i] = -1
	}
	state := make([]byte, size)

	// open keeps insertion order so equal priorities resolve to the oldest entry.
	open := make([]int, 0, 64)
	open = append(open, startIdx)
	state[startIdx] = nodeOpen
	gScore[startIdx] = 0

	visited := make([]Cell, 0, 64)
	for len(open) > 0 && len(visited) < maxNodes {
		best := 0
		bestF := gScore[open[0]] + g.cell(open[0]).Manhattan(goal)
		for i := 1; i < len(open); i++ {
			f := gScore[open[i]] + g.cell(open[i]).Manhattan(goal)
			if f < bestF {
				best = i
				bestF = f
			}
		}
		currentIdx := open[best]
		open = append(open[:best], open[best+1:]...)
		state[currentIdx] = nodeClosed

		current := g.cell(currentIdx)
		visited = append(visited, current)

		if currentIdx == goalIdx {
			return reconstructPath(cameFrom, startIdx, goalIdx, g.Width), visited, nil
		}

		for _, d := range neighborOffsets {
			n := Cell{X: current.X + d.X, Y: current.Y + d.Y}
			if !g.InBounds(n) || g.blocked(n) {
				continue
			}
			neighborIdx := g.index(n)
			if state[neighborIdx] == nodeClosed {
				continue
			}
			tentative := gScore[currentIdx] + 1
			if prev := gScore[neighborIdx]; prev >= 0 && tentative >= prev {
				continue
			}
			gScore[neighborIdx] = tentative
			cameFrom[neighborIdx] = currentIdx
			if state[neighborIdx] != nodeOpen {
				open = append(open, neighborIdx)
				state[neighborIdx] = nodeOpen
			}
		}
	}

	if len(open) > 0 {
		return nil, visited, fmt.Errorf("%w: %v -> %v: gave up after %d nodes", ErrNoPath, start, goal, len(visited))
	}
	return nil, visited, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, goal)
}

func (g *Grid) blocked(c Cell) bool {
	return g.Blocked != nil && g.Blocked(c)
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.Width + c.X
}

func (g *Grid) cell(idx int) Cell {
	return Cell{X: idx % g.Width, Y: idx / g.Width}
}

func reconstructPath(cameFrom []int, startIdx, goalIdx, width int) Path {
	path := make(Path, 0, 32)
	for cur := goalIdx; cur != startIdx; cur = cameFrom[cur] {
		if cur < 0 {
			return nil
		}
		path = append(path, Cell{X: cur % width, Y: cur / width})
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
