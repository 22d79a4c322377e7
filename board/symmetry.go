package board

import "math/bits"

// FlipVertical mirrors a mask across the horizontal midline of the bit
// layout by reversing its bytes.
func FlipVertical(x uint64) uint64 {
	return bits.ReverseBytes64(x)
}

// Rotate180 rotates a mask by half a turn.
func Rotate180(x uint64) uint64 {
	return bits.Reverse64(x)
}

// FlipDiagonal transposes a mask across its main diagonal.
func FlipDiagonal(x uint64) uint64 {
	t := 0x0f0f0f0f00000000 & (x ^ (x << 28))
	x ^= t ^ (t >> 28)
	t = 0x3333000033330000 & (x ^ (x << 14))
	x ^= t ^ (t >> 14)
	t = 0x5500550055005500 & (x ^ (x << 7))
	x ^= t ^ (t >> 7)
	return x
}

func (b Board) transform(f func(uint64) uint64) Board {
	return Board{Black: f(b.Black), White: f(b.White)}
}

// Expand returns the orbit of b under the eight symmetries of the square:
// b, its vertical mirror, the half turns of both, and the diagonal
// transposes of those four.
func Expand(b Board) [8]Board {
	var res [8]Board
	res[0] = b
	res[1] = b.transform(FlipVertical)
	for i := 0; i < 2; i++ {
		res[2+i] = res[i].transform(Rotate180)
	}
	for i := 0; i < 4; i++ {
		res[4+i] = res[i].transform(FlipDiagonal)
	}
	return res
}

// Distinct returns the orbit of b without duplicates. A board with its own
// symmetries has fewer than eight distinct images.
func Distinct(b Board) []Board {
	orbit := Expand(b)
	res := make([]Board, 0, len(orbit))
	for _, o := range orbit {
		dup := false
		for _, r := range res {
			if r == o {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, o)
		}
	}
	return res
}

// Canonical is the smallest member of the orbit of b, ordered by the black
// mask and then the white mask. All symmetric images of a position share
// the same canonical board.
func Canonical(b Board) Board {
	best := b
	for _, o := range Expand(b) {
		if o.Black < best.Black || (o.Black == best.Black && o.White < best.White) {
			best = o
		}
	}
	return best
}
