package layout

import (
	"hash/fnv"
	"math"
)

// Jitter returns a deterministic offset for id with each component in
// [-amplitude, amplitude]. The offset is derived from the 64-bit FNV-1a hash
// of the id: the low 32 bits drive dx and the high 32 bits drive dy.
func Jitter(id string, amplitude float64) (dx, dy float64) {
	if amplitude <= 0 {
		return 0, 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum64()

	return spread(uint32(sum), amplitude), spread(uint32(sum>>32), amplitude)
}

func spread(v uint32, amplitude float64) float64 {
	return (float64(v)/math.MaxUint32*2 - 1) * amplitude
}
