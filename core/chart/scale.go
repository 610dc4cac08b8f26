package chart

import "math"

// snapEpsilon absorbs floating point drift so that inverting an integer
// position lands back on that integer.
const snapEpsilon = 1e-9

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps a domain value to the range. A degenerate domain maps everything to the range start.
func (s LinearScale) Apply(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d0 == d1 {
		return r0
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Invert maps a range value back to the domain. A degenerate range inverts to the domain start.
func (s LinearScale) Invert(px float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if r0 == r1 {
		return d0
	}
	v := d0 + (px-r0)/(r1-r0)*(d1-d0)
	if n := math.Round(v); math.Abs(v-n) < snapEpsilon {
		return n
	}
	return v
}

// Ticks returns roughly count evenly spaced, human friendly values inside the domain.
// Steps are 1, 2 or 5 times a power of ten.
func (s LinearScale) Ticks(count int) []float64 {
	start, stop := s.Domain[0], s.Domain[1]
	if start > stop {
		start, stop = stop, start
	}
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	step0 := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step0))
	ratio := step0 / math.Pow(10, power)
	factor := 1.0
	switch {
	case ratio >= math.Sqrt(50):
		factor = 10
	case ratio >= math.Sqrt(10):
		factor = 5
	case ratio >= math.Sqrt(2):
		factor = 2
	}

	var ticks []float64
	if power < 0 {
		// Work in inverse steps so 0.1 style increments stay exact
		inc := math.Pow(10, -power) / factor
		for i := math.Ceil(start * inc); i <= math.Floor(stop*inc); i++ {
			ticks = append(ticks, i/inc)
		}
		return ticks
	}
	step := factor * math.Pow(10, power)
	for i := math.Ceil(start / step); i <= math.Floor(stop/step); i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}

// ScalePair holds the two scales of the impact chart.
type ScalePair struct {
	X LinearScale // [0, authorCount] -> [0, innerWidth]
	Y LinearScale // [0, maxValue] -> [innerHeight, 0]
}

// BuildScales builds the chart scales. The y scale is inverted so that zero sits on the bottom edge.
func BuildScales(innerWidth, innerHeight float64, authorCount int, maxValue float64) ScalePair {
	return ScalePair{
		X: NewLinearScale(0, float64(authorCount), 0, innerWidth),
		Y: NewLinearScale(0, maxValue, innerHeight, 0),
	}
}
