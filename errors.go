package wordsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for an invalid grid side.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrLength is returned for a word that cannot fit in the grid.
	ErrLength = errors.New("word longer than grid side")
	// ErrPlacementExhausted is returned for a word that could not be placed
	// within the attempt budget.
	ErrPlacementExhausted = errors.New("placement attempts exhausted")
	// ErrShape is returned when solving a grid that is empty or not square.
	ErrShape = errors.New("malformed grid")
)

// LengthError reports a word longer than the grid side.
type LengthError struct {
	Word string
	Side int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%q (%d letters) cannot be inserted into a %dx%d grid: %v", e.Word, len(e.Word), e.Side, e.Side, ErrLength)
}

func (e *LengthError) Unwrap() error {
	return ErrLength
}

// PlacementError reports a word that could not be placed.
type PlacementError struct {
	Word     string
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("could not add %q after %d attempts: %v", e.Word, e.Attempts, ErrPlacementExhausted)
}

func (e *PlacementError) Unwrap() error {
	return ErrPlacementExhausted
}
