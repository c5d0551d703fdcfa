package timedataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// GenerateDampedWaveY produces amp * exp(-damping*i) * sin(step*i) for each index i. A
// damping of zero yields an undamped sine wave.
func GenerateDampedWaveY(n int, amp, step, damping float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		y = append(y, amp*math.Exp(-damping*x)*math.Sin(step*x))
	}
	return Series(y)
}

// GenerateIntNoise draws n uniform integers from the inclusive range [lo, hi].
func GenerateIntNoise(n, lo, hi int, rng *rand.Rand) Series {
	if hi < lo {
		lo, hi = hi, lo
	}
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, float64(lo+rng.IntN(hi-lo+1)))
	}
	return Series(y)
}
