package stats

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}

func TestSampleStddev(t *testing.T) {
	// Sample stddev of {2,4,4,4,5,5,7,9} with mean 5 is sqrt(32/7)
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	want := math.Sqrt(32.0 / 7.0)
	if got := SampleStddev(values, Mean(values)); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSampleStddev_FewerThanTwoSamples(t *testing.T) {
	if got := SampleStddev([]float64{5}, 5); got != 0 {
		t.Errorf("expected 0 for single sample, got %v", got)
	}
	if got := SampleStddev(nil, 0); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}

	if got := Percentile(sorted, 0.50); got != 30 {
		t.Errorf("expected median 30, got %v", got)
	}
	// idx = 0.25*4 = 1.0 → exactly the second element
	if got := Percentile(sorted, 0.25); got != 20 {
		t.Errorf("expected P25 20, got %v", got)
	}
	// idx = 0.90*4 = 3.6 → 40 + 0.6*(50-40) = 46
	if got := Percentile(sorted, 0.90); math.Abs(got-46) > 1e-12 {
		t.Errorf("expected P90 46, got %v", got)
	}
	if got := Percentile(sorted, 1.0); got != 50 {
		t.Errorf("expected P100 50, got %v", got)
	}
}

func TestPercentile_DegenerateInputs(t *testing.T) {
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
	if got := Percentile([]float64{7}, 0.95); got != 7 {
		t.Errorf("expected single element 7, got %v", got)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3, -1, 4, 1, 5})
	if lo != -1 || hi != 5 {
		t.Errorf("expected (-1, 5), got (%v, %v)", lo, hi)
	}

	lo, hi = MinMax(nil)
	if lo != 0 || hi != 0 {
		t.Errorf("expected (0, 0) for empty input, got (%v, %v)", lo, hi)
	}
}
