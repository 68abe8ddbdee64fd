package render

import "math"

// NiceStep rounds rough up to the nearest 1, 2 or 5 times a power of ten.
// Values below 1 return 1.
func NiceStep(rough float64) int {
	if rough <= 1 || math.IsNaN(rough) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= rough-1e-9 {
			return int(math.Round(step))
		}
	}
	return int(math.Round(10 * mag))
}

// Ticks returns the multiples of step in [0, length).
func Ticks(length, step int) []int {
	if step < 1 || length < 1 {
		return nil
	}
	out := make([]int, 0, length/step+1)
	for p := 0; p < length; p += step {
		out = append(out, p)
	}
	return out
}
