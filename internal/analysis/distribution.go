package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"dataprof/domain/profile"
)

// Shape computes the distribution shape of a numeric sample: skewness,
// kurtosis and a rough normality check. Samples too small for the moments
// (fewer than four values) report zero moments and fail the normality test.
func Shape(name string, sample []float64) profile.DistributionShape {
	shape := profile.DistributionShape{Variable: name, ShapiroP: 1.0}
	if len(sample) < 4 {
		return shape
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return shape
	}
	stdDev, err := stats.StandardDeviationSample(sample)
	if err != nil || stdDev == 0 {
		return shape
	}

	shape.Skewness = skewness(sample, mean, stdDev)
	shape.Kurtosis = kurtosis(sample, mean, stdDev)
	shape.IsNormal, shape.ShapiroP = approxNormality(shape.Skewness, shape.Kurtosis)
	return shape
}

// skewness computes the adjusted Fisher-Pearson coefficient of skewness.
func skewness(sample []float64, mean, stdDev float64) float64 {
	n := float64(len(sample))
	sum := 0.0
	for _, x := range sample {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis computes sample kurtosis (normal distribution = 3).
func kurtosis(sample []float64, mean, stdDev float64) float64 {
	n := float64(len(sample))
	sum := 0.0
	for _, x := range sample {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	excess := sum/n - 3
	if n > 3 {
		excess = excess*(n-1)/((n-2)*(n-3)) + 6/(n+1)
	}
	return excess + 3
}

// approxNormality scores the combined deviation of skewness and kurtosis
// from normal-distribution values against a chi-square with two degrees of
// freedom. It is an approximation, not a Shapiro-Wilk test; it exists to
// flag obviously non-normal columns in the report.
func approxNormality(skew, kurt float64) (bool, float64) {
	testStat := math.Abs(skew) + math.Abs(kurt-3)/2
	chi := distuv.ChiSquared{K: 2}
	p := 1 - chi.CDF(testStat*testStat)
	return p > 0.05, p
}
