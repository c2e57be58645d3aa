package geom

import (
	"math"
	"math/rand/v2"
)

// Rand draws the kernel's random values from a single source. The zero value
// is not usable; use NewRand or Global.
type Rand struct {
	float func() float64
}

// NewRand returns a deterministic Rand seeded with seed.
func NewRand(seed uint64) *Rand {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Rand{float: r.Float64}
}

// Global returns a Rand backed by the runtime's shared generator.
func Global() *Rand {
	return &Rand{float: rand.Float64}
}

// Int returns a value in [min, max). The scaled value is truncated toward
// zero, so ranges with a negative minimum are not perfectly uniform.
func (r *Rand) Int(min, max int) int {
	return int(math.Trunc(r.float()*float64(max-min) + float64(min)))
}

// Float returns a uniform value in [min, max).
func (r *Rand) Float(min, max float64) float64 {
	return r.float()*(max-min) + min
}

// CoinFlip returns true with the given probability. The probability is not
// clamped; values outside [0, 1] are always false or always true.
func (r *Rand) CoinFlip(probability float64) bool {
	return r.float() < probability
}

var global = Global()

// RandomInt returns a value in [min, max) from the shared generator.
func RandomInt(min, max int) int {
	return global.Int(min, max)
}

// RandomFloat returns a value in [min, max) from the shared generator.
func RandomFloat(min, max float64) float64 {
	return global.Float(min, max)
}

// CoinFlip returns true with the given probability from the shared generator.
func CoinFlip(probability float64) bool {
	return global.CoinFlip(probability)
}
