package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// UniformSource yields uniform draws in [0,1). *rand.Rand satisfies it;
// tests inject seeded or scripted sources.
type UniformSource interface {
	Float64() float64
}

// NormalSampler draws normally distributed rate samples via the
// Box-Muller transform.
type NormalSampler struct {
	src UniformSource
}

// NewNormalSampler wraps an injectable uniform source.
func NewNormalSampler(src UniformSource) *NormalSampler {
	return &NormalSampler{src: src}
}

// NewSeededNormalSampler builds a sampler over a seeded PRNG, for
// reproducible runs.
func NewSeededNormalSampler(seed int64) *NormalSampler {
	return NewNormalSampler(rand.New(rand.NewSource(seed)))
}

// NewSystemNormalSampler builds a sampler seeded from the clock.
func NewSystemNormalSampler() *NormalSampler {
	return NewSeededNormalSampler(time.Now().UnixNano())
}

// Sample returns one draw from Normal(mean, stdDev), both in the percent
// units the economic variables use.
func (s *NormalSampler) Sample(mean, stdDev decimal.Decimal) decimal.Decimal {
	return mean.Add(stdDev.Mul(decimal.NewFromFloat(s.normFloat64())))
}

// normFloat64 is the Box-Muller transform over two independent uniforms.
// u1 is mapped into (0,1] so the logarithm stays finite.
func (s *NormalSampler) normFloat64() float64 {
	u1 := 1 - s.src.Float64()
	u2 := s.src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
