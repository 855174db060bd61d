package board

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint produces a canonical content hash of the board suitable for
// use as a transposition cache key. Two boards with the same dimensions and
// settings, the same snakes in the same slots, and the same food and hazard
// cells hash identically, whatever order the food and hazard cells are
// stored in. Snakes are hashed in slot order.
func (b Board) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeUint(uint64(b.Width))
	writeUint(uint64(b.Height))
	if b.Wrap {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	writeUint(uint64(b.HazardDamage))
	writeUint(uint64(b.Viewpoint))

	for i := 0; i < b.NumSnakes; i++ {
		s := &b.Snakes[i]
		writeUint(uint64(s.ID))
		if s.Alive {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		writeUint(uint64(s.Health))
		writeUint(uint64(s.BodyLen))
		for j := 0; j < s.BodyLen; j++ {
			writeUint(uint64(s.Body[j]))
		}
	}

	food := append([]int32(nil), b.Food[:b.NumFood]...)
	sort.Slice(food, func(i, j int) bool { return food[i] < food[j] })
	for _, c := range food {
		writeUint(uint64(c))
	}

	hazards := append([]int32(nil), b.Hazards[:b.NumHazards]...)
	sort.Slice(hazards, func(i, j int) bool { return hazards[i] < hazards[j] })
	for _, c := range hazards {
		writeUint(uint64(c))
	}

	return h.Sum64()
}
