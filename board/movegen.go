package board

// A direction is a shift amount and the mask of opponent cells a line may
// run through without wrapping around a board edge.
type direction struct {
	shift uint
	mask  uint64
}

var directions = [4]direction{
	{1, 0x7e7e7e7e7e7e7e7e},
	{8, 0x00ffffffffffff00},
	{7, 0x007e7e7e7e7e7e00},
	{9, 0x007e7e7e7e7e7e00},
}

// A run of opponent discs is at most six long on an 8-wide board, so six
// chained shifts are enough.
func chainUp(p, m uint64, n uint) uint64 {
	r := m & (p << n)
	r |= m & (r << n)
	r |= m & (r << n)
	r |= m & (r << n)
	r |= m & (r << n)
	r |= m & (r << n)
	return r
}

func chainDown(p, m uint64, n uint) uint64 {
	r := m & (p >> n)
	r |= m & (r >> n)
	r |= m & (r >> n)
	r |= m & (r >> n)
	r |= m & (r >> n)
	r |= m & (r >> n)
	return r
}

// Flippable returns the blank cells where the owner of mover can place a disc.
func Flippable(mover, opp uint64) uint64 {
	blank := ^(mover | opp)
	var res uint64
	for _, d := range directions {
		m := opp & d.mask
		res |= blank & (chainUp(mover, m, d.shift) << d.shift)
		res |= blank & (chainDown(mover, m, d.shift) >> d.shift)
	}
	return res
}

// LegalMoves returns the mask of cells where c may place a disc.
func LegalMoves(b Board, c Color) uint64 {
	mover, opp := b.Masks(c)
	return Flippable(mover, opp)
}

// Mobility is the number of legal placements for c.
func Mobility(b Board, c Color) int {
	return Popcount(LegalMoves(b, c))
}

// Flips returns the opponent discs captured by placing a mover disc at pos
// (a single-bit mask). A line is captured only if it ends on a mover disc.
func Flips(mover, opp, pos uint64) uint64 {
	var res uint64
	for _, d := range directions {
		m := opp & d.mask
		if line := chainUp(pos, m, d.shift); mover&(line<<d.shift) != 0 {
			res |= line
		}
		if line := chainDown(pos, m, d.shift); mover&(line>>d.shift) != 0 {
			res |= line
		}
	}
	return res
}
