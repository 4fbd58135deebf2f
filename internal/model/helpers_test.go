package model

import "testing"

func sq(t *testing.T, code string) Coord {
	t.Helper()
	c, err := ParseCoord(code)
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return c
}

func boardWith(pieces ...Piece) *Board {
	b := newEmptyBoard()
	for _, p := range pieces {
		b.put(p)
	}
	return b
}

func pc(t *testing.T, typ PieceType, color PieceColor, code string) Piece {
	t.Helper()
	return Piece{Type: typ, Color: color, Position: sq(t, code)}
}

func moved(p Piece) Piece {
	p.HasMoved = true
	return p
}

func destinations(moves []Move) map[string]Move {
	out := make(map[string]Move, len(moves))
	for _, m := range moves {
		out[m.To.Code()] = m
	}
	return out
}

func mustFind(t *testing.T, moves []Move, to string) Move {
	t.Helper()
	m, ok := destinations(moves)[to]
	if !ok {
		t.Fatalf("expected a move to %s, got %v", to, codes(moves))
	}
	return m
}

func codes(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To.Code())
	}
	return out
}
