package board

import "strings"

// ToDisplayText renders the board as a grid with the column letters across
// the top. X is black and O is white.
func (b Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(" |A B C D E F G H\n")
	sb.WriteString("-+----------------\n")
	for row := 0; row < 8; row++ {
		sb.WriteByte(byte('1' + row))
		sb.WriteByte('|')
		for col := 0; col < 8; col++ {
			sq := NewSquare(col, row)
			switch {
			case b.Black&sq.Bit() != 0:
				sb.WriteString("X ")
			case b.White&sq.Bit() != 0:
				sb.WriteString("O ")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  (X: Black,  O: White)\n")
	return sb.String()
}

func (b Board) String() string {
	return b.ToDisplayText()
}
