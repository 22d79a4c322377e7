package board

type corner struct {
	col, row   int
	dcol, drow int
}

var corners = [4]corner{
	{0, 0, 1, 1},
	{7, 7, -1, -1},
	{7, 0, -1, 1},
	{0, 7, 1, -1},
}

func has(mask uint64, col, row int) bool {
	return mask&NewSquare(col, row).Bit() != 0
}

// StableDiscs estimates the number of stable discs in mask by counting,
// from every occupied corner, the unbroken runs of discs along the column
// edge, the row edge and the diagonal leaving that corner. A line that is
// full is reached from both of its corners and only counts once.
func StableDiscs(mask uint64) int {
	res, dup := 0, 0
	for _, c := range corners {
		if !has(mask, c.col, c.row) {
			continue
		}
		res++
		for _, step := range [3][2]int{{c.dcol, 0}, {0, c.drow}, {c.dcol, c.drow}} {
			i := 1
			for i <= 7 && has(mask, c.col+step[0]*i, c.row+step[1]*i) {
				i++
			}
			res += i - 1
			if i == 8 {
				dup += i
			}
		}
	}
	return res - dup/2
}

// Frontier counts the blank cells adjacent, in any of the eight
// directions, to a cell of changed.
func Frontier(changed, mover, opp uint64) int {
	n := (changed << 1) & 0xfefefefefefefefe
	n |= (changed >> 1) & 0x7f7f7f7f7f7f7f7f
	n |= changed << 8
	n |= changed >> 8
	n |= (changed << 9) & 0xfefefefefefefefe
	n |= (changed >> 9) & 0x7f7f7f7f7f7f7f7f
	n |= (changed << 7) & 0x7f7f7f7f7f7f7f7f
	n |= (changed >> 7) & 0xfefefefefefefefe
	n &^= mover | opp
	return Popcount(n)
}
