package testutil

import "math/rand"

// Ramp returns n bytes cycling through every byte value: 0, 1, ..., 255, 0, ...
// Every complete 256-byte window has entropy 8.
func Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// Repeated returns n copies of b.
func Repeated(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// DeterministicBytes returns n pseudo-random bytes from a fixed seed.
func DeterministicBytes(seed int64, n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = byte(rng.Intn(256))
	}
	return out
}

// Shuffled returns a permuted copy of buf using a fixed seed. The input is
// not modified.
func Shuffled(seed int64, buf []byte) []byte {
	out := append([]byte(nil), buf...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// XORKey returns plain XORed with key repeated to the length of plain.
// An empty key returns a copy of plain.
func XORKey(plain, key []byte) []byte {
	out := append([]byte(nil), plain...)
	if len(key) == 0 {
		return out
	}
	for i := range out {
		out[i] ^= key[i%len(key)]
	}
	return out
}

// Concat joins the given buffers into a new slice.
func Concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
