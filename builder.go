package wordsearch

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"crosswarped.com/wordsearch/internal"
	"crosswarped.com/wordsearch/pkg/compass"
)

const (
	MinSide = 5
	MaxSide = 50

	// DefaultMaxAttempts is how many random placements are tried per word.
	DefaultMaxAttempts = 100
)

// Placement records where a word was hidden.
type Placement struct {
	Word      string            `json:"word"`
	Start     Point             `json:"start"`
	End       Point             `json:"end"`
	Direction compass.Direction `json:"direction"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %v -> %v (%v)", p.Word, p.Start, p.End, p.Direction)
}

// SkippedWord is a word that was not hidden, with the reason.
type SkippedWord struct {
	Word string
	Err  error
}

// Puzzle is a finished grid together with the words hidden in it.
type Puzzle struct {
	Grid       Grid
	Placements []Placement
	Skipped    []SkippedWord
}

type Builder struct {
	Side        int
	WordsToHide []string
	MaxAttempts int

	rand   *rand.Rand
	logger *zap.Logger
}

type BuilderParams struct {
	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// CreateBuilder validates side and normalizes wordsToHide. Words that are not
// purely alphabetic are dropped.
func CreateBuilder(side int, wordsToHide []string, rand *rand.Rand, params BuilderParams) (*Builder, error) {
	if side < MinSide || side > MaxSide {
		return nil, fmt.Errorf("%w: side %d is outside [%d, %d]", ErrConfiguration, side, MinSide, MaxSide)
	}
	if rand == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfiguration)
	}

	maxAttempts := params.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		Side:        side,
		WordsToHide: internal.NormalizeWords(wordsToHide),
		MaxAttempts: maxAttempts,
		rand:        rand,
		logger:      logger,
	}, nil
}

// Build creates a builder with default params and runs it.
func Build(side int, wordsToHide []string, rand *rand.Rand) (*Puzzle, error) {
	b, err := CreateBuilder(side, wordsToHide, rand, BuilderParams{})
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// cell is a grid position during construction. The zero value is empty.
type cell struct {
	filled bool
	letter rune
}

// gridState is a grid being built.
type gridState struct {
	side  int
	cells [][]cell

	rand *rand.Rand
}

func newGridState(side int, rand *rand.Rand) *gridState {
	cells := make([][]cell, side)
	for i := range cells {
		cells[i] = make([]cell, side)
	}
	return &gridState{side: side, cells: cells, rand: rand}
}

// fitsWalls reports whether a word of length n starting at (col, row) stays
// inside the grid when written in dir.
func (s *gridState) fitsWalls(n, col, row int, dir compass.Direction) bool {
	colPass, rowPass := true, true
	if dir.IsWestern() {
		colPass = col+1 >= n
	} else if dir.IsEastern() {
		colPass = s.side-col >= n
	}
	if dir.IsNorthern() {
		rowPass = row+1 >= n
	} else if dir.IsSouthern() {
		rowPass = s.side-row >= n
	}
	return colPass && rowPass
}

func (s *gridState) startingCell(n int, dir compass.Direction) Point {
	for {
		col, row := s.rand.IntN(s.side), s.rand.IntN(s.side)
		if s.fitsWalls(n, col, row, dir) {
			return Point{Col: col, Row: row}
		}
	}
}

// tryPlace makes one randomized attempt to write word. Nothing is written
// unless every letter either lands on an empty cell or matches the letter
// already there.
func (s *gridState) tryPlace(word []rune) (Placement, bool) {
	dir := compass.Random(s.rand)
	start := s.startingCell(len(word), dir)
	dx, dy := dir.Vector()

	col, row := start.Col, start.Row
	for _, r := range word {
		c := s.cells[row][col]
		if c.filled && c.letter != r {
			return Placement{}, false
		}
		col, row = col+dx, row+dy
	}

	col, row = start.Col, start.Row
	for _, r := range word {
		s.cells[row][col] = cell{filled: true, letter: r}
		col, row = col+dx, row+dy
	}

	n := len(word) - 1
	return Placement{
		Word:      string(word),
		Start:     start,
		End:       Point{Col: start.Col + n*dx, Row: start.Row + n*dy},
		Direction: dir,
	}, true
}

func (s *gridState) fill() Grid {
	g := make([][]rune, s.side)
	for y, row := range s.cells {
		g[y] = make([]rune, s.side)
		for x, c := range row {
			if c.filled {
				g[y][x] = c.letter
			} else {
				g[y][x] = 'A' + s.rand.Int32N(26)
			}
		}
	}
	return NewGrid(g)
}

// Build hides every word it can and fills the remaining cells with random
// letters. The returned puzzle is always complete; the error, when non-nil,
// combines the per-word failures, also listed in Puzzle.Skipped.
func (b *Builder) Build() (*Puzzle, error) {
	state := newGridState(b.Side, b.rand)
	puzzle := &Puzzle{}

	var errs error
	for _, word := range b.WordsToHide {
		p, err := b.hide(state, word)
		if err != nil {
			b.logger.Warn("word not implanted", zap.String("word", word), zap.Error(err))
			puzzle.Skipped = append(puzzle.Skipped, SkippedWord{Word: word, Err: err})
			errs = multierr.Append(errs, err)
			continue
		}
		puzzle.Placements = append(puzzle.Placements, p)
	}

	puzzle.Grid = state.fill()
	b.logger.Debug("grid built",
		zap.Int("side", b.Side),
		zap.Int("placed", len(puzzle.Placements)),
		zap.Int("skipped", len(puzzle.Skipped)))
	return puzzle, errs
}

func (b *Builder) hide(state *gridState, word string) (Placement, error) {
	letters := []rune(word)
	if len(letters) > b.Side {
		return Placement{}, &LengthError{Word: word, Side: b.Side}
	}
	for range b.MaxAttempts {
		if p, ok := state.tryPlace(letters); ok {
			return p, nil
		}
	}
	return Placement{}, &PlacementError{Word: word, Attempts: b.MaxAttempts}
}
