package simulation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// scriptedSource replays a fixed sequence of uniforms.
type scriptedSource struct {
	values []float64
	next   int
}

func (s *scriptedSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestNormalSampler_ZeroStdDevReturnsMean(t *testing.T) {
	sampler := NewSeededNormalSampler(42)
	mean := decimal.NewFromFloat(2.5)

	for i := 0; i < 10; i++ {
		got := sampler.Sample(mean, decimal.Zero)
		assert.True(t, got.Equal(mean), "Zero volatility should return the mean exactly")
	}
}

func TestNormalSampler_BoxMullerTransform(t *testing.T) {
	// With scripted uniforms the transform is fully determined.
	u1, u2 := 0.25, 0.75
	sampler := NewNormalSampler(&scriptedSource{values: []float64{u1, u2}})

	z := math.Sqrt(-2*math.Log(1-u1)) * math.Cos(2*math.Pi*u2)
	want := decimal.NewFromFloat(z)

	got := sampler.Sample(decimal.Zero, decimal.NewFromInt(1))
	assert.True(t, got.Sub(want).Abs().LessThan(decimal.NewFromFloat(1e-12)),
		"Sample should apply the Box-Muller transform, got %s want %s", got, want)
}

func TestNormalSampler_HandlesZeroUniform(t *testing.T) {
	// A raw 0 from the source must not produce log(0).
	sampler := NewNormalSampler(&scriptedSource{values: []float64{0, 0.5}})

	got := sampler.Sample(decimal.Zero, decimal.NewFromInt(1))
	f, _ := got.Float64()
	assert.False(t, math.IsNaN(f), "Draw must be finite")
	assert.False(t, math.IsInf(f, 0), "Draw must be finite")
}

func TestNormalSampler_SeededReproducibility(t *testing.T) {
	a := NewSeededNormalSampler(7)
	b := NewSeededNormalSampler(7)

	mean := decimal.NewFromInt(5)
	stdDev := decimal.NewFromInt(2)
	for i := 0; i < 100; i++ {
		assert.True(t, a.Sample(mean, stdDev).Equal(b.Sample(mean, stdDev)),
			"Same seed should produce identical draw sequences")
	}
}

func TestNormalSampler_DistributionShape(t *testing.T) {
	sampler := NewSeededNormalSampler(12345)

	const n = 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v, _ := sampler.Sample(decimal.Zero, decimal.NewFromInt(1)).Float64()
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	assert.InDelta(t, 0.0, mean, 0.05, "Sample mean should be near 0")
	assert.InDelta(t, 1.0, variance, 0.05, "Sample variance should be near 1")
}
