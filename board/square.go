package board

import (
	"fmt"
	"strings"
)

// A Square is a cell index in [0, 64). Square i is written as the column
// letter 'A'+i/8 followed by the row digit '1'+i%8, which is how the game
// server addresses cells.
type Square int8

// NoSquare is returned where no cell applies.
const NoSquare Square = -1

// NewSquare builds a square from a column (0 for 'A') and a row (0 for '1').
func NewSquare(col, row int) Square {
	return Square(col*8 + row)
}

// Col is the column index; 0 is the 'A' column.
func (s Square) Col() int {
	return int(s) / 8
}

// Row is the row index; 0 is the '1' row.
func (s Square) Row() int {
	return int(s) % 8
}

// Bit returns the single-bit mask for this square.
func (s Square) Bit() uint64 {
	return 1 << uint(s)
}

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "--"
	}
	return string([]byte{byte('A' + s.Col()), byte('1' + s.Row())})
}

// ParseSquare parses a two-character cell code such as "F5" or "f5".
func ParseSquare(code string) (Square, error) {
	if len(code) != 2 {
		return NoSquare, fmt.Errorf("cell code %q must be two characters", code)
	}
	c := strings.ToUpper(code)
	col := int(c[0]) - 'A'
	row := int(c[1]) - '1'
	if col < 0 || col > 7 || row < 0 || row > 7 {
		return NoSquare, fmt.Errorf("cell code %q out of range", code)
	}
	return NewSquare(col, row), nil
}
