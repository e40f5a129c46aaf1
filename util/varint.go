package util

// VarintSize is the encoded length of x as a Bitcoin style variable length integer.
func VarintSize(x uint64) uint64 {
	switch {
	case x < 0xfd:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
