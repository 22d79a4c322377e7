package move

import (
	"fmt"

	"github.com/domino14/othello/board"
)

// MoveType is a type of move; a placement, a pass or a resignation.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	MoveTypePass
	MoveTypeResign
)

const (
	PassToken   = "PASS"
	ResignToken = "GIVEUP"
)

// Move is a single decision of a player. Only placements carry a square.
type Move struct {
	action MoveType
	sq     board.Square
}

// NewPlacement returns a move that places a disc on sq.
func NewPlacement(sq board.Square) Move {
	return Move{action: MoveTypePlace, sq: sq}
}

// NewPass returns a pass. Passing is only legal when no placement is.
func NewPass() Move {
	return Move{action: MoveTypePass, sq: board.NoSquare}
}

// NewResign returns a resignation.
func NewResign() Move {
	return Move{action: MoveTypeResign, sq: board.NoSquare}
}

func (m Move) Action() MoveType {
	return m.action
}

// Square is the placement cell, or board.NoSquare for passes and
// resignations.
func (m Move) Square() board.Square {
	return m.sq
}

func (m Move) IsPlacement() bool {
	return m.action == MoveTypePlace
}

func (m Move) IsPass() bool {
	return m.action == MoveTypePass
}

// String is the wire form of the move: "F5", "PASS" or "GIVEUP".
func (m Move) String() string {
	switch m.action {
	case MoveTypePass:
		return PassToken
	case MoveTypeResign:
		return ResignToken
	}
	return m.sq.String()
}

// FromString parses the wire form of a move.
func FromString(s string) (Move, error) {
	switch s {
	case PassToken:
		return NewPass(), nil
	case ResignToken:
		return NewResign(), nil
	}
	sq, err := board.ParseSquare(s)
	if err != nil {
		return Move{}, fmt.Errorf("bad move %q: %w", s, err)
	}
	return NewPlacement(sq), nil
}

// Apply plays m for color c on b. Passes and resignations leave the board
// unchanged.
func Apply(b board.Board, m Move, c board.Color) board.Board {
	if m.action != MoveTypePlace {
		return b
	}
	return b.Play(m.sq, c)
}

// Validate reports whether m is legal for c on b.
func Validate(b board.Board, m Move, c board.Color) error {
	switch m.action {
	case MoveTypeResign:
		return nil
	case MoveTypePass:
		if b.HasMoves(c) {
			return fmt.Errorf("%v cannot pass with placements available", c)
		}
		return nil
	}
	if !b.Legal(m.sq, c) {
		return fmt.Errorf("%v is not a legal placement for %v", m.sq, c)
	}
	return nil
}
