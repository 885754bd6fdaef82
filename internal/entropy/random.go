// Package entropy provides the random sources that drive every stochastic
// decision in the growth model: branch spawn trials, spawn angles, length
// limit draws and sway sign flips.
// Sources are injected rather than global so runs can be replayed from a seed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source yields uniformly distributed floats in [0, 1).
// *math/rand.Rand satisfies it directly.
type Source interface {
	Float64() float64
}

// NewSeeded returns a deterministic source. A zero seed picks one from crypto/rand.
func NewSeeded(seed int64) Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return mrand.New(mrand.NewSource(seed))
}

// Range returns a uniform draw from [low, high).
func Range(src Source, low, high float64) float64 {
	return low + src.Float64()*(high-low)
}

// Chance reports whether a Bernoulli trial with probability p succeeds.
// p is not clamped; values above 1 always succeed.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// cryptoSeed returns a positive int64 seed from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:])>>1) | 1
}
