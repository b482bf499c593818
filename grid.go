package wordsearch

import (
	"fmt"
	"strings"
)

// Point is a zero-indexed cell position.
type Point struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Col, p.Row)
}

// Grid is a square grid of uppercase letters.
type Grid struct {
	grid [][]rune
}

// NewGrid wraps rows, indexed [row][col]. The rows are not copied.
func NewGrid(g [][]rune) Grid {
	return Grid{
		grid: g,
	}
}

// ParseGrid builds a grid from one string per row. Spaces are ignored.
func ParseGrid(rows ...string) Grid {
	g := make([][]rune, len(rows))
	for i, r := range rows {
		g[i] = []rune(strings.ToUpper(strings.ReplaceAll(r, " ", "")))
	}
	return NewGrid(g)
}

// Side returns the number of rows.
func (g Grid) Side() int {
	return len(g.grid)
}

func (g Grid) Get(col, row int) rune {
	return g.grid[row][col]
}

func (g Grid) At(p Point) rune {
	return g.grid[p.Row][p.Col]
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < len(g.grid) && p.Col >= 0 && p.Col < len(g.grid[p.Row])
}

// Rows returns a copy of the letters, one string per row.
func (g Grid) Rows() []string {
	rows := make([]string, len(g.grid))
	for y, r := range g.grid {
		rows[y] = string(r)
	}
	return rows
}

// Validate checks the grid is non-empty and square.
func (g Grid) Validate() error {
	side := len(g.grid)
	if side == 0 {
		return fmt.Errorf("%w: grid has no rows", ErrShape)
	}
	for y, r := range g.grid {
		if len(r) != side {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrShape, y, len(r), side)
		}
	}
	return nil
}

// Repr renders the grid with letters separated by two spaces.
func (g Grid) Repr() string {
	lines := make([]string, g.Side())
	for y, r := range g.grid {
		cells := make([]string, len(r))
		for x, c := range r {
			cells[x] = string(c)
		}
		lines[y] = strings.Join(cells, "  ")
	}
	return strings.Join(lines, "\n")
}

func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{side: %d, grid: %q}", g.Side(), g.Rows())
}
