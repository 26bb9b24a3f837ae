package hashing

// Splitmix64 constants from the splitmix64 finalizer by Vigna (2014).
const (
	// MixShift1 is the first right-shift in the splitmix64 finalizer.
	MixShift1 = 30

	// MixMul1 is the first multiplier in the splitmix64 finalizer.
	MixMul1 = 0xbf58476d1ce4e5b9

	// MixShift2 is the second right-shift in the splitmix64 finalizer.
	MixShift2 = 27

	// MixMul2 is the second multiplier in the splitmix64 finalizer.
	MixMul2 = 0x94d049bb133111eb

	// MixShift3 is the third right-shift in the splitmix64 finalizer.
	MixShift3 = 31
)

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Mix64 applies the splitmix64 finalizer for full-avalanche mixing.
// It is a pure output function and does not advance any state.
func Mix64(v uint64) uint64 {
	v ^= v >> MixShift1
	v *= MixMul1
	v ^= v >> MixShift2
	v *= MixMul2
	v ^= v >> MixShift3

	return v
}

// MixHash combines a base hash with a seed using XOR and the splitmix64 finalizer.
// This produces a deterministic hash variation for a given (base, seed) pair.
func MixHash(base, seed uint64) uint64 {
	return Mix64(base ^ seed)
}

// FNV64a computes a 64-bit FNV-1a hash of the given data without allocating.
func FNV64a(data []byte) uint64 {
	h := uint64(fnvOffset64)

	for _, b := range data {
		h ^= uint64(b)
		h *= fnvPrime64
	}

	return h
}
