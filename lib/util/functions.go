package util

// --------------------------------------------------------------------------
// Hash Functions
// --------------------------------------------------------------------------

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// HashUint64 hashes a 64-bit integer with a seed.
// It uses FNV-1a over the little endian bytes of v, which spreads sequential
// values (e.g. key sequence numbers) over the full 64-bit range.
func HashUint64(v uint64, seed uint64) uint64 {
	hash := uint64(offset64) ^ seed

	for i := 0; i < 8; i++ {
		hash ^= v & 0xff
		hash *= prime64
		v >>= 8
	}

	return hash
}
