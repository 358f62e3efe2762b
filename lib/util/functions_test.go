package util

import (
	"math"
	"testing"
)

func TestHashUint64(t *testing.T) {
	seed := uint64(0x9e3779b97f4a7c15)

	if HashUint64(42, seed) != HashUint64(42, seed) {
		t.Errorf("HashUint64 must be deterministic for the same input and seed")
	}

	if HashUint64(42, seed) == HashUint64(43, seed) {
		t.Errorf("Sequential values should not collide")
	}

	if HashUint64(42, 1) == HashUint64(42, 2) {
		t.Errorf("Different seeds should produce different hashes")
	}

	// sequential inputs should touch the high bits as well
	var highBits uint64
	for i := uint64(0); i < 64; i++ {
		highBits |= HashUint64(i, 0) >> 56
	}
	if highBits == 0 {
		t.Errorf("Hashes of sequential values never set the top byte")
	}
}

func TestNewStats(t *testing.T) {
	if s := NewStats(nil); s != (Stats{}) {
		t.Errorf("Expected empty stats for no values, got %+v", s)
	}

	s := NewStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 || s.Min != 2 || s.Max != 9 || s.Mean != 5 || s.Sum != 40 {
		t.Errorf("Unexpected stats %+v", s)
	}
	if math.Abs(s.StdDeviation-2) > 1e-9 {
		t.Errorf("Expected standard deviation 2, got %f", s.StdDeviation)
	}
}
