package signal

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNormalizeRow_MinMaxExact(t *testing.T) {
	row := []float64{210, 180, 420, 300, 180}
	got := NormalizeRow(row)

	if got[1] != 0 || got[4] != 0 {
		t.Fatalf("expected minimum to map to 0, got %v", got)
	}
	if got[2] != 1 {
		t.Fatalf("expected maximum to map to 1, got %v", got)
	}
	if math.Abs(got[3]-0.5) > 1e-12 {
		t.Fatalf("expected midpoint 0.5, got %v", got[3])
	}
	if row[2] != 420 {
		t.Fatalf("input row was modified")
	}
}

func TestNormalizeRow_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
	}{
		{"constant", []float64{7, 7, 7}},
		{"all zero", []float64{0, 0, 0, 0}},
		{"single", []float64{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRow(tt.row)
			if len(got) != len(tt.row) {
				t.Fatalf("expected %d values, got %d", len(tt.row), len(got))
			}
			for i, v := range got {
				if math.IsNaN(v) || v != 0 {
					t.Fatalf("value %d: expected 0, got %v", i, v)
				}
			}
		})
	}
}

func TestNormalizeRow_Empty(t *testing.T) {
	if got := NormalizeRow(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestNormalize_RowsAreIndependent(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		100, 300, 200,
		0, 0, 0,
	})

	got := Normalize(m)
	want := mat.NewDense(3, 3, []float64{
		0, 0.5, 1,
		0, 1, 0.5,
		0, 0, 0,
	})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Fatalf("unexpected result:\n%v", mat.Formatted(got))
	}
	if m.At(1, 1) != 300 {
		t.Fatalf("input matrix was modified")
	}

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if v := got.At(r, c); v < 0 || v > 1 {
				t.Fatalf("value %v at (%d,%d) outside [0,1]", v, r, c)
			}
		}
	}
}
