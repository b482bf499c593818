package wordsearch

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/wordsearch/pkg/compass"
	"crosswarped.com/wordsearch/pkg/trie"
)

// FoundWord is one occurrence of a known word in a grid.
type FoundWord struct {
	Word  string `json:"word"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// Direction returns the direction the word is read in. It reports false for
// single-letter words.
func (f FoundWord) Direction() (compass.Direction, bool) {
	return compass.Toward(f.End.Col-f.Start.Col, f.End.Row-f.Start.Row)
}

// Cell is a grid letter together with its position.
type Cell struct {
	Point
	Letter rune
}

// Solver finds known words in grids. A Solver only reads its trie, so one
// Solver may be used from several goroutines.
type Solver struct {
	tree *trie.Trie
}

func NewSolver(tree *trie.Trie) *Solver {
	return &Solver{tree: tree}
}

// NewSolverFromWords builds the trie from knownWords.
func NewSolverFromWords(knownWords []string) *Solver {
	return NewSolver(trie.New(knownWords...))
}

func (s *Solver) Tree() *trie.Trie {
	return s.tree
}

// Solve returns every occurrence of every known word along the eight
// directions. Results are grouped by direction in compass.All order, then by
// slice, then by start and end offset within the slice.
func (s *Solver) Solve(g Grid) ([]FoundWord, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var found []FoundWord
	for _, dir := range compass.All {
		for _, line := range Slices(g, dir) {
			found = s.findWords(found, line)
		}
	}
	return found, nil
}

// SolveParallel is Solve with each direction scanned on its own goroutine.
// The result is identical to Solve.
func (s *Solver) SolveParallel(ctx context.Context, g Grid) ([]FoundWord, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	perDirection := make([][]FoundWord, len(compass.All))
	eg, ctx := errgroup.WithContext(ctx)
	for i, dir := range compass.All {
		eg.Go(func() error {
			var found []FoundWord
			for _, line := range Slices(g, dir) {
				if err := ctx.Err(); err != nil {
					return err
				}
				found = s.findWords(found, line)
			}
			perDirection[i] = found
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(perDirection...), nil
}

// findWords appends every known word found in line, walking the trie from
// each start offset and continuing past completed words so that longer words
// sharing the prefix are reported too.
func (s *Solver) findWords(found []FoundWord, line []Cell) []FoundWord {
	root := s.tree.Root()
	for i, start := range line {
		node := root.Child(start.Letter)
		if node == nil {
			continue
		}
		for j := i; ; {
			if node.IsWord() {
				found = append(found, FoundWord{Word: node.Word(), Start: start.Point, End: line[j].Point})
			}
			j++
			if j == len(line) {
				break
			}
			if node = node.Child(line[j].Letter); node == nil {
				break
			}
		}
	}
	return found
}

// Slices returns the lines of g read in dir. Rows and columns give one slice
// each; diagonal directions give 2*side-1 slices of length 1 to side.
func Slices(g Grid, dir compass.Direction) [][]Cell {
	side := g.Side()
	var starts []Point
	switch dir {
	case compass.North:
		for col := range side {
			starts = append(starts, Point{Col: col, Row: side - 1})
		}
	case compass.South:
		for col := range side {
			starts = append(starts, Point{Col: col, Row: 0})
		}
	case compass.West:
		for row := range side {
			starts = append(starts, Point{Col: side - 1, Row: row})
		}
	case compass.East:
		for row := range side {
			starts = append(starts, Point{Col: 0, Row: row})
		}
	case compass.NorthWest, compass.SouthWest:
		for diag := range 2*side - 1 {
			col := min(side, diag+1) - 1
			row := diag - col
			if dir == compass.NorthWest {
				row = col - diag + side - 1
			}
			starts = append(starts, Point{Col: col, Row: row})
		}
	case compass.NorthEast, compass.SouthEast:
		for diag := range 2*side - 1 {
			col := max(0, diag-side+1)
			row := diag - col
			if dir == compass.SouthEast {
				row = col - diag + side - 1
			}
			starts = append(starts, Point{Col: col, Row: row})
		}
	}

	dx, dy := dir.Vector()
	lines := make([][]Cell, 0, len(starts))
	for _, start := range starts {
		var line []Cell
		for p := start; g.Contains(p); p.Col, p.Row = p.Col+dx, p.Row+dy {
			line = append(line, Cell{Point: p, Letter: g.At(p)})
		}
		lines = append(lines, line)
	}
	return lines
}

// Missing returns the placements that have no matching found word.
func Missing(placements []Placement, found []FoundWord) []Placement {
	seen := make(map[FoundWord]bool, len(found))
	for _, f := range found {
		seen[f] = true
	}
	var missing []Placement
	for _, p := range placements {
		if !seen[FoundWord{Word: p.Word, Start: p.Start, End: p.End}] {
			missing = append(missing, p)
		}
	}
	return missing
}
