package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"crosswarped.com/wordsearch"
	"crosswarped.com/wordsearch/internal"
)

func main() {
	side := flag.Int("grid", 15, "The side length of the grid")
	wordsToHide := flag.String("words", "", "Space-delimited list of words to hide in the grid")
	dictionary := flag.String("dictionary", "", "The file to load known words from")
	ratio := flag.Float64("ratio", internal.DefaultWordRatio, "Longest dictionary word as a share of the grid side")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	minWordLength := flag.Int("min_length", 3, "The minimum dictionary word length")
	excludedFile := flag.String("excluded", "", "The file to load excluded words from")
	quiet := flag.Bool("quiet", false, "Only show the grid until asked for the results")
	verbose := flag.Bool("verbose", false, "Show every word found, not only the hidden ones")
	parallel := flag.Bool("parallel", false, "Scan directions concurrently")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	if *dictionary == "" {
		fmt.Println("A dictionary file is required (-dictionary)")
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("random source", zap.Uint64("seed", *seed))

	var excluded []string
	if *excludedFile != "" {
		var err error
		if excluded, err = readLines(*excludedFile); err != nil {
			fmt.Println("Error loading excluded words from file:", err)
			os.Exit(1)
		}
	}

	maxLength := internal.MaxWordLengthFor(*side, *ratio)
	known, err := loadFromFile(*dictionary, internal.KnownWordsParams{
		ExcludedWords: excluded,
		MinWordLength: minWordLength,
		MaxWordLength: &maxLength,
	})
	if err != nil {
		fmt.Println("Error loading words from file:", err)
		os.Exit(1)
	}
	logger.Info("dictionary loaded", zap.String("path", *dictionary), zap.Int("words", len(known)), zap.Int("max_length", maxLength))

	puzzle, err := buildPuzzle(puzzleConfig{
		side:        *side,
		seed:        *seed,
		wordsToHide: strings.Fields(*wordsToHide),
		known:       known,
	}, logger)
	if puzzle == nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if err != nil {
		logger.Warn("some words were not hidden", zap.Error(err))
	}

	fmt.Printf("\n%s\n\n", puzzle.Grid.Repr())

	solver := wordsearch.NewSolverFromWords(known)
	var found []wordsearch.FoundWord
	if *parallel {
		found, err = solver.SolveParallel(context.Background(), puzzle.Grid)
	} else {
		found, err = solver.Solve(puzzle.Grid)
	}
	if err != nil {
		fmt.Println("Error solving grid:", err)
		os.Exit(1)
	}

	if *quiet {
		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("Show the results? (Y/N) ")
			answer, err := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer == "y" || answer == "yes" {
				break
			}
			if err != nil {
				return
			}
		}
	}

	report(puzzle, found, *verbose)
}

type puzzleConfig struct {
	side        int
	seed        uint64
	wordsToHide []string
	known       []string
}

// newRand returns the random source for seed. The same seed always yields
// the same puzzle.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1024))
}

// buildPuzzle hides cfg.wordsToHide, or 3 to 6 random known words when none
// are given. A nil puzzle means the configuration was rejected.
func buildPuzzle(cfg puzzleConfig, logger *zap.Logger) (*wordsearch.Puzzle, error) {
	rng := newRand(cfg.seed)

	hide := cfg.wordsToHide
	if len(hide) == 0 {
		// Using shorter words decreases the number of collisions.
		hide = internal.PickWords(cfg.known, rng, 3, 6)
	}

	builder, err := wordsearch.CreateBuilder(cfg.side, hide, rng, wordsearch.BuilderParams{Logger: logger})
	if err != nil {
		return nil, err
	}
	return builder.Build()
}

func report(puzzle *wordsearch.Puzzle, found []wordsearch.FoundWord, verbose bool) {
	hidden := make(map[wordsearch.FoundWord]bool, len(puzzle.Placements))
	for _, p := range puzzle.Placements {
		hidden[wordsearch.FoundWord{Word: p.Word, Start: p.Start, End: p.End}] = true
	}

	if len(wordsearch.Missing(puzzle.Placements, found)) == 0 {
		printBold("ALL HIDDEN WORDS FOUND", colorGreen)
	}

	printBold("\nWORDS HIDDEN:", colorWhite)
	placements := slices.Clone(puzzle.Placements)
	slices.SortFunc(placements, func(a, b wordsearch.Placement) int {
		return strings.Compare(a.Word, b.Word)
	})
	for _, p := range placements {
		fmt.Println(p)
	}
	for _, s := range puzzle.Skipped {
		fmt.Printf("%s (not hidden: %v)\n", s.Word, s.Err)
	}

	found = slices.Clone(found)
	slices.SortStableFunc(found, func(a, b wordsearch.FoundWord) int {
		return strings.Compare(a.Word, b.Word)
	})

	printBold("\nWORDS FOUND:", colorWhite)
	for _, f := range found {
		if hidden[f] {
			fmt.Println(formatFound(f))
		}
	}

	if !verbose {
		return
	}
	printBold("\nREST OF THE WORDS FOUND IN THE GRID:", colorWhite)
	for _, f := range found {
		if !hidden[f] {
			fmt.Println(formatFound(f))
		}
	}
}

func formatFound(f wordsearch.FoundWord) string {
	if d, ok := f.Direction(); ok {
		return fmt.Sprintf("%s %v -> %v (%v)", f.Word, f.Start, f.End, d)
	}
	return fmt.Sprintf("%s %v", f.Word, f.Start)
}

const (
	colorGreen = "32"
	colorWhite = "37"
)

func printBold(s, color string) {
	fmt.Printf("\x1b[1;%sm%s\x1b[0m\n", color, s)
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// loadFromFile reads the dictionary at path and applies the filters in p.
// p.Words is ignored.
func loadFromFile(path string, p internal.KnownWordsParams) ([]string, error) {
	words, err := readLines(path)
	if err != nil {
		return nil, err
	}
	p.Words = words
	return internal.KnownWords(p), nil
}
