package wordsearch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"crosswarped.com/wordsearch/pkg/compass"
	"crosswarped.com/wordsearch/pkg/trie"
)

var fixtureGrid = ParseGrid(
	"AOGBQPRBHCREDGA",
	"XDGHVJIFDJJFLFO",
	"PATPMHKUZOVYYCI",
	"YWSUHXMZSUMSZPA",
	"VBOJRYLEVLRBNTI",
	"DWUBYNSMQOQJRVX",
	"ACESCFPIOUPYBCK",
	"ZOBPHGOIOMIBRUF",
	"RXEYDMWRKLRWZJM",
	"QEBIDRAOTEOOELV",
	"OLMOAHSNVUSGHDA",
	"OQEOIWVEYANAIQX",
	"XXMTTQURZETAKSW",
	"JFYPIEHHHPYNTIT",
	"TQIRUGSOVPKEFEY",
)

var fixtureImplanted = []Placement{
	{Word: "BUSHMAN", Start: Point{1, 4}, End: Point{7, 10}, Direction: compass.SouthEast},
	{Word: "EMOTES", Start: Point{1, 9}, End: Point{6, 14}, Direction: compass.SouthEast},
	{Word: "FORTUNATE", Start: Point{5, 6}, End: Point{13, 14}, Direction: compass.SouthEast},
	{Word: "PHYSIOLOGIST", Start: Point{3, 2}, End: Point{14, 13}, Direction: compass.SouthEast},
	{Word: "TURNPIKES", Start: Point{2, 2}, End: Point{10, 10}, Direction: compass.SouthEast},
}

func TestSlices(t *testing.T) {
	g := ParseGrid("ABC", "DEF", "GHI")

	read := func(lines [][]Cell) []string {
		var out []string
		for _, line := range lines {
			var sb strings.Builder
			for _, c := range line {
				sb.WriteRune(c.Letter)
			}
			out = append(out, sb.String())
		}
		return out
	}

	tests := []struct {
		dir  compass.Direction
		want []string
	}{
		{compass.North, []string{"GDA", "HEB", "IFC"}},
		{compass.South, []string{"ADG", "BEH", "CFI"}},
		{compass.West, []string{"CBA", "FED", "IHG"}},
		{compass.East, []string{"ABC", "DEF", "GHI"}},
		{compass.NorthWest, []string{"G", "HD", "IEA", "FB", "C"}},
		{compass.NorthEast, []string{"A", "DB", "GEC", "HF", "I"}},
		{compass.SouthWest, []string{"A", "BD", "CEG", "FH", "I"}},
		{compass.SouthEast, []string{"G", "DH", "AEI", "BF", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			lines := Slices(g, tt.dir)
			if diff := cmp.Diff(tt.want, read(lines)); diff != "" {
				t.Errorf("Slices() mismatch (-want +got):\n%s", diff)
			}
			dx, dy := tt.dir.Vector()
			for _, line := range lines {
				for i := 1; i < len(line); i++ {
					prev, cur := line[i-1].Point, line[i].Point
					if cur.Col-prev.Col != dx || cur.Row-prev.Row != dy {
						t.Fatalf("slice steps from %v to %v, want (%d, %d)", prev, cur, dx, dy)
					}
				}
			}
		})
	}
}

func TestSlices_CoverGridOnce(t *testing.T) {
	g, _ := Build(7, nil, newRand(5))
	for _, dir := range compass.All {
		seen := make(map[Point]int)
		for _, line := range Slices(g.Grid, dir) {
			if len(line) < 1 || len(line) > 7 {
				t.Fatalf("%v slice has length %d", dir, len(line))
			}
			for _, c := range line {
				seen[c.Point]++
				if c.Letter != g.Grid.At(c.Point) {
					t.Fatalf("%v slice has %q at %v, grid has %q", dir, c.Letter, c.Point, g.Grid.At(c.Point))
				}
			}
		}
		if len(seen) != 49 {
			t.Errorf("%v slices cover %d cells, want 49", dir, len(seen))
		}
		for p, n := range seen {
			if n != 1 {
				t.Errorf("%v slices visit %v %d times", dir, p, n)
			}
		}
	}
}

func TestSolve(t *testing.T) {
	g := ParseGrid(
		"CARDS",
		"AAOXE",
		"TOPAT",
		"SXNEA",
		"DOGTC",
	)
	solver := NewSolverFromWords([]string{
		"car", "card", "cards", "cat", "cats", "top", "pot", "dog", "god", "tea",
		"eat", "tap", "pat", "ace", "art", "cape", "ape", "pac", "net",
	})

	got, err := solver.Solve(g)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	want := []FoundWord{
		// N
		{"TEA", Point{3, 4}, Point{3, 2}},
		{"CAT", Point{4, 4}, Point{4, 2}},
		// S
		{"CAT", Point{0, 0}, Point{0, 2}},
		{"CATS", Point{0, 0}, Point{0, 3}},
		// W
		{"TAP", Point{4, 2}, Point{2, 2}},
		{"POT", Point{2, 2}, Point{0, 2}},
		{"GOD", Point{2, 4}, Point{0, 4}},
		// E
		{"CAR", Point{0, 0}, Point{2, 0}},
		{"CARD", Point{0, 0}, Point{3, 0}},
		{"CARDS", Point{0, 0}, Point{4, 0}},
		{"TOP", Point{0, 2}, Point{2, 2}},
		{"PAT", Point{2, 2}, Point{4, 2}},
		{"DOG", Point{0, 4}, Point{2, 4}},
		// NW
		{"PAC", Point{2, 2}, Point{0, 0}},
		// SE
		{"CAPE", Point{0, 0}, Point{3, 3}},
		{"APE", Point{1, 1}, Point{3, 3}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve() mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_SingleLetterWord(t *testing.T) {
	g := ParseGrid("QQQQQ", "QQQQQ", "QQIQQ", "QQQQQ", "QQQQQ")
	got, err := NewSolverFromWords([]string{"I"}).Solve(g)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	// Reported once per direction.
	if len(got) != len(compass.All) {
		t.Fatalf("Solve() = %v, want %d records", got, len(compass.All))
	}
	for _, f := range got {
		if f.Start != (Point{2, 2}) || f.End != (Point{2, 2}) {
			t.Errorf("record %v, want I at (2, 2)", f)
		}
	}
}

func TestSolve_Shape(t *testing.T) {
	solver := NewSolverFromWords([]string{"CAT"})
	tests := []struct {
		name string
		grid Grid
	}{
		{"empty", NewGrid(nil)},
		{"ragged", ParseGrid("CATS", "CAT", "CATS", "CATS")},
		{"not square", ParseGrid("CATS", "CATS")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := solver.Solve(tt.grid); !errors.Is(err, ErrShape) {
				t.Errorf("Solve() error = %v, want ErrShape", err)
			}
			if _, err := solver.SolveParallel(t.Context(), tt.grid); !errors.Is(err, ErrShape) {
				t.Errorf("SolveParallel() error = %v, want ErrShape", err)
			}
		})
	}
}

func TestSolve_Fixture(t *testing.T) {
	solver := NewSolverFromWords(append(loadWords(t), "PHYSIO", "TURNPIKE"))
	found, err := solver.Solve(fixtureGrid)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if missing := Missing(fixtureImplanted, found); len(missing) != 0 {
		t.Errorf("implanted words not found: %v", missing)
	}
	for _, f := range found {
		if !solver.Tree().Contains(f.Word) {
			t.Errorf("found unknown word %v", f)
		}
	}
}

func TestSolve_FixtureExact(t *testing.T) {
	var words []string
	for _, p := range fixtureImplanted {
		words = append(words, p.Word)
	}
	found, err := NewSolverFromWords(words).Solve(fixtureGrid)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	// All five run south east; slices are ordered by diagonal, then offset.
	want := []FoundWord{
		{"EMOTES", Point{1, 9}, Point{6, 14}},
		{"BUSHMAN", Point{1, 4}, Point{7, 10}},
		{"FORTUNATE", Point{5, 6}, Point{13, 14}},
		{"TURNPIKES", Point{2, 2}, Point{10, 10}},
		{"PHYSIOLOGIST", Point{3, 2}, Point{14, 13}},
	}
	if diff := cmp.Diff(want, found); diff != "" {
		t.Errorf("Solve() mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_ImplantedSubsetOfFound(t *testing.T) {
	words := loadWords(t)
	solver := NewSolverFromWords(words)

	for seed := range uint64(30) {
		rng := newRand(seed)
		side := 12 + rng.IntN(19)
		toHide := make([]string, 3+rng.IntN(4))
		for i := range toHide {
			toHide[i] = words[rng.IntN(len(words))]
		}

		puzzle, _ := Build(side, toHide, rng)
		found, err := solver.Solve(puzzle.Grid)
		if err != nil {
			t.Fatalf("seed %d: Solve() error = %v", seed, err)
		}
		if missing := Missing(puzzle.Placements, found); len(missing) != 0 {
			t.Errorf("seed %d: implanted words not found: %v", seed, missing)
		}
		for _, f := range found {
			if !solver.Tree().Contains(f.Word) {
				t.Errorf("seed %d: found unknown word %v", seed, f)
			}
			if d, ok := f.Direction(); ok && !d.Valid() {
				t.Errorf("seed %d: record %v has no direction", seed, f)
			}
		}
	}
}

func TestSolveParallel_MatchesSolve(t *testing.T) {
	words := loadWords(t)
	solver := NewSolver(trie.New(words...))

	for seed := range uint64(10) {
		rng := newRand(seed)
		puzzle, _ := Build(20, words[:12], rng)

		want, err := solver.Solve(puzzle.Grid)
		if err != nil {
			t.Fatalf("Solve() error = %v", err)
		}
		got, err := solver.SolveParallel(t.Context(), puzzle.Grid)
		if err != nil {
			t.Fatalf("SolveParallel() error = %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("seed %d: SolveParallel() mismatch (-Solve +SolveParallel):\n%s", seed, diff)
		}
	}
}

func TestSolveParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	puzzle, _ := Build(10, nil, newRand(1))
	if _, err := NewSolverFromWords([]string{"CAT"}).SolveParallel(ctx, puzzle.Grid); !errors.Is(err, context.Canceled) {
		t.Errorf("SolveParallel() error = %v, want context.Canceled", err)
	}
}

func TestMissing(t *testing.T) {
	found := []FoundWord{{"CAT", Point{0, 0}, Point{2, 0}}}
	placements := []Placement{
		{Word: "CAT", Start: Point{0, 0}, End: Point{2, 0}, Direction: compass.East},
		{Word: "DOG", Start: Point{0, 1}, End: Point{2, 1}, Direction: compass.East},
	}
	got := Missing(placements, found)
	if diff := cmp.Diff(placements[1:], got); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
}

// syntheticDictionary returns n pseudo-random words of 3 to 12 letters.
func syntheticDictionary(n int) []string {
	rng := newRand(2024)
	words := make([]string, n)
	for i := range words {
		b := make([]byte, 3+rng.IntN(10))
		for j := range b {
			b[j] = byte('A' + rng.IntN(26))
		}
		words[i] = string(b)
	}
	return words
}

func TestSolve_Performance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}
	solver := NewSolverFromWords(append(syntheticDictionary(60_000), loadWords(t)...))
	rng := newRand(11)

	for i := range 100 {
		puzzle, _ := Build(15, []string{"cocoa", "lumberjack", "parrot"}, rng)
		start := time.Now()
		if _, err := solver.Solve(puzzle.Grid); err != nil {
			t.Fatalf("Solve() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Fatalf("solve %d took %v", i, elapsed)
		}
	}
}

func BenchmarkSolve(b *testing.B) {
	solver := NewSolverFromWords(syntheticDictionary(60_000))
	for _, side := range []int{15, 30, 50} {
		b.Run(fmt.Sprintf("%dx%d", side, side), func(b *testing.B) {
			puzzle, _ := Build(side, nil, rand.New(rand.NewPCG(42, 1024)))
			b.ReportAllocs()
			for b.Loop() {
				found, _ := solver.Solve(puzzle.Grid)
				b.ReportMetric(float64(len(found)), "words_found")
			}
		})
	}
}
