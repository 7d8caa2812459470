package game

func clampF(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// shakeNoise is a xorshift64* stream, reseeded every frame by the camera.
type shakeNoise uint64

func (n *shakeNoise) unit() float64 {
	x := uint64(*n) | 1
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	*n = shakeNoise(x)
	return float64((x*2685821657736338717)>>11) / (1 << 53)
}

// offset returns a value in [-mag, mag).
func (n *shakeNoise) offset(mag float64) float64 {
	return mag * (2*n.unit() - 1)
}
