package scoring

import "math"

// Small statistics helpers shared by the evaluators.

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func variance(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := mean(vs)
	var sum float64
	for _, v := range vs {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vs))
}

func stddev(vs []float64) float64 {
	return math.Sqrt(variance(vs))
}

// coeffVariation returns stddev/mean, or 0 for an empty or zero-mean sample.
func coeffVariation(vs []float64) float64 {
	m := mean(vs)
	if m == 0 {
		return 0
	}
	return stddev(vs) / m
}
