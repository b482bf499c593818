// Package compass models the eight directions a word can run in a grid.
package compass

import (
	"fmt"
	"math/rand/v2"
)

// Direction is one of the eight compass points. Columns grow to the east and
// rows grow to the south.
type Direction int

const (
	North Direction = iota
	South
	West
	East
	NorthWest
	NorthEast
	SouthWest
	SouthEast
)

// All lists every direction in canonical order.
var All = [...]Direction{North, South, West, East, NorthWest, NorthEast, SouthWest, SouthEast}

// Group is a set of directions sharing a vertical or horizontal component.
type Group [3]Direction

var (
	Northern = Group{North, NorthWest, NorthEast}
	Southern = Group{South, SouthWest, SouthEast}
	Western  = Group{West, NorthWest, SouthWest}
	Eastern  = Group{East, NorthEast, SouthEast}
)

var names = [...]string{"N", "S", "W", "E", "NW", "NE", "SW", "SE"}

var vectors = [...][2]int{
	North:     {0, -1},
	South:     {0, 1},
	West:      {-1, 0},
	East:      {1, 0},
	NorthWest: {-1, -1},
	NorthEast: {1, -1},
	SouthWest: {-1, 1},
	SouthEast: {1, 1},
}

// Random picks a direction uniformly using r.
func Random(r *rand.Rand) Direction {
	return All[r.IntN(len(All))]
}

// Valid reports whether d is one of the eight directions.
func (d Direction) Valid() bool {
	return d >= North && d <= SouthEast
}

// Vector returns the column and row step for one move in d. An invalid
// direction does not move.
func (d Direction) Vector() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	v := vectors[d]
	return v[0], v[1]
}

// In reports whether d belongs to g.
func (d Direction) In(g Group) bool {
	for _, m := range g {
		if m == d {
			return true
		}
	}
	return false
}

func (d Direction) IsNorthern() bool { return d.In(Northern) }
func (d Direction) IsSouthern() bool { return d.In(Southern) }
func (d Direction) IsWestern() bool  { return d.In(Western) }
func (d Direction) IsEastern() bool  { return d.In(Eastern) }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	dx, dy := d.Vector()
	o, _ := Toward(-dx, -dy)
	return o
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return names[d]
}

// Parse returns the direction with the short name s ("N", "SE", ...).
func Parse(s string) (Direction, error) {
	for i, n := range names {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Toward returns the direction whose vector has the signs of dx and dy.
// It reports false when both are zero or the offset is not a straight line.
func Toward(dx, dy int) (Direction, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return 0, false
	}
	sx, sy := sign(dx), sign(dy)
	for _, d := range All {
		if vx, vy := d.Vector(); vx == sx && vy == sy {
			return d, true
		}
	}
	return 0, false
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = p
	return nil
}
