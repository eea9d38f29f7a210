package magma

// SBox holds eight 4-bit substitutions. Row b replaces the b-th nibble of the
// round value counting from the most significant one, so the rows run from
// the standard's pi_7 down to pi_0.
type SBox [8][16]byte

// SBoxTC26Z returns id-tc26-gost-28147-param-Z, the substitution fixed by
// GOST R 34.12-2015 for Magma.
func SBoxTC26Z() SBox { return sboxTC26Z }

// SBoxTestParamSet returns id-GostR3411-94-TestParamSet from RFC 4357.
func SBoxTestParamSet() SBox { return sboxTestParamSet }

var sboxTC26Z = SBox{
	{1, 7, 14, 13, 0, 5, 8, 3, 4, 15, 10, 6, 9, 12, 11, 2},
	{8, 14, 2, 5, 6, 9, 1, 12, 15, 4, 11, 0, 13, 10, 3, 7},
	{5, 13, 15, 6, 9, 2, 12, 10, 11, 7, 8, 1, 4, 3, 14, 0},
	{7, 15, 5, 10, 8, 1, 6, 13, 0, 9, 3, 14, 11, 4, 2, 12},
	{12, 8, 2, 1, 13, 4, 15, 6, 7, 0, 10, 5, 3, 14, 9, 11},
	{11, 3, 5, 8, 2, 15, 10, 13, 14, 1, 7, 4, 12, 9, 6, 0},
	{6, 8, 2, 3, 9, 10, 5, 12, 1, 14, 4, 7, 11, 13, 0, 15},
	{12, 4, 6, 2, 10, 5, 11, 9, 14, 8, 13, 7, 0, 3, 15, 1},
}

var sboxTestParamSet = SBox{
	{1, 15, 13, 0, 5, 7, 10, 4, 9, 2, 3, 14, 6, 11, 8, 12},
	{13, 11, 4, 1, 3, 15, 5, 9, 0, 10, 14, 7, 6, 8, 2, 12},
	{4, 11, 10, 0, 7, 2, 1, 13, 3, 6, 8, 5, 9, 12, 15, 14},
	{6, 12, 7, 1, 5, 15, 13, 8, 4, 10, 9, 14, 0, 3, 11, 2},
	{7, 13, 10, 1, 0, 8, 9, 15, 14, 4, 6, 12, 11, 2, 5, 3},
	{5, 8, 1, 13, 10, 3, 4, 2, 14, 15, 12, 7, 6, 0, 9, 11},
	{14, 11, 4, 12, 6, 13, 15, 10, 2, 3, 8, 1, 0, 7, 5, 9},
	{4, 10, 9, 2, 13, 8, 0, 14, 6, 11, 1, 12, 7, 15, 5, 3},
}

// substitute runs every nibble of x through its row, most significant first.
func (s *SBox) substitute(x uint32) uint32 {
	var out uint32
	for b := 0; b < 8; b++ {
		shift := 28 - 4*b
		out |= uint32(s[b][(x>>shift)&0x0f]) << shift
	}
	return out
}
