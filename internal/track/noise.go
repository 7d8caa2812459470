package track

// pixelHash mixes a seed and a grid coordinate through the splitmix64
// finaliser. Equal inputs always give equal bits.
func pixelHash(seed uint64, x, y int) uint64 {
	z := seed ^ uint64(uint32(x))<<32 ^ uint64(uint32(y))
	z += 0x9E3779B97F4A7C15
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}
