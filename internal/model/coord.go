package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

// Coord is a square on the board. X is the file (0 = a), Y is the row as
// stored on the board (0 = rank 8, 7 = rank 1).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CoordFromFileRank builds a Coord from a file index (0 = a) and a displayed
// rank (1-8). The result is not validated; use IsValid.
func CoordFromFileRank(file, rank int) Coord {
	return Coord{X: file, Y: boardSize - rank}
}

// ParseCoord parses an algebraic square such as "e4".
func ParseCoord(code string) (Coord, error) {
	code = strings.TrimSpace(strings.ToLower(code))
	if len(code) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidSquare, code)
	}
	c := CoordFromFileRank(int(code[0]-'a'), int(code[1]-'0'))
	if !c.IsValid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidSquare, code)
	}
	return c, nil
}

func (c Coord) IsValid() bool {
	return c.X >= 0 && c.X < boardSize && c.Y >= 0 && c.Y < boardSize
}

func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Code returns the algebraic name of the square, e.g. "e4".
func (c Coord) Code() string {
	return c.File() + c.Rank()
}

func (c Coord) File() string {
	return fmt.Sprintf("%c", c.X+'a')
}

func (c Coord) Rank() string {
	return fmt.Sprintf("%d", boardSize-c.Y)
}

func (c Coord) String() string {
	return c.Code()
}

// SquareSet is a set of squares backed by a 64 bit mask.
type SquareSet uint64

func (s SquareSet) Has(c Coord) bool {
	if !c.IsValid() {
		return false
	}
	return s&(1<<uint(c.Y*boardSize+c.X)) != 0
}

func (s *SquareSet) Add(c Coord) {
	if c.IsValid() {
		*s |= 1 << uint(c.Y*boardSize+c.X)
	}
}

func (s SquareSet) Len() int {
	n := 0
	for b := uint64(s); b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Coords lists the members in board order (a8 first, h1 last).
func (s SquareSet) Coords() []Coord {
	coords := make([]Coord, 0, s.Len())
	for i := 0; i < boardSize*boardSize; i++ {
		if s&(1<<uint(i)) != 0 {
			coords = append(coords, Coord{X: i % boardSize, Y: i / boardSize})
		}
	}
	return coords
}
