package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"dataprof/domain/dataset"
	"dataprof/domain/profile"
)

// SummarizeNumeric computes the fence summary for one numeric column.
//
// The column may contain missing values; they are dropped before any
// statistic is computed, but totalRows (the parent table's row count) stays
// the denominator of the outlier percentage. A column with zero non-missing
// values yields count=0 with every statistic NaN, never an error.
func SummarizeNumeric(name string, values []dataset.Value, totalRows int) profile.NumericSummary {
	summary := profile.NumericSummary{
		Variable:   name,
		Mean:       math.NaN(),
		Std:        math.NaN(),
		Min:        math.NaN(),
		Q1:         math.NaN(),
		Median:     math.NaN(),
		Q3:         math.NaN(),
		Max:        math.NaN(),
		IQR:        math.NaN(),
		LowerFence: math.NaN(),
		UpperFence: math.NaN(),
		OutlierPct: math.NaN(),
	}

	sample := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			sample = append(sample, *v.NumericVal)
		}
	}
	summary.Count = len(sample)
	if len(sample) == 0 {
		return summary
	}

	mean, _ := stats.Mean(sample)
	minVal, _ := stats.Min(sample)
	maxVal, _ := stats.Max(sample)
	median, _ := stats.Median(sample)

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	outliers := 0
	for _, x := range sample {
		if x < lower || x > upper {
			outliers++
		}
	}

	summary.Mean = round2(mean)
	summary.Min = minVal
	summary.Q1 = q1
	summary.Median = median
	summary.Q3 = q3
	summary.Max = maxVal
	summary.IQR = iqr
	summary.LowerFence = lower
	summary.UpperFence = upper
	summary.OutlierPct = round2(float64(outliers) / float64(totalRows) * 100)

	if len(sample) >= 2 {
		std, _ := stats.StandardDeviationSample(sample)
		summary.Std = round2(std)
	}

	return summary
}

// quantile interpolates linearly between the closest ranks of a sorted
// sample: the value at fractional position (n-1)*p. This matches the
// conventional type-7 quantile the summaries are specified against; the
// montanaflynn Percentile and gonum Quantile variants use other rank
// conventions and would drift on small samples.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// round2 rounds to two decimal places, passing NaN through untouched.
func round2(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	rounded, err := stats.Round(x, 2)
	if err != nil {
		return x
	}
	return rounded
}
