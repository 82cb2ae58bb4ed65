package projection

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewCSRValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		data    []float64
		indices []int
		indptr  []int
		wantErr bool
	}{
		{
			name: "valid two row matrix",
			rows: 2, cols: 4,
			data:    []float64{1, -1, 2},
			indices: []int{0, 3, 1},
			indptr:  []int{0, 2, 3},
		},
		{
			name: "valid empty rows",
			rows: 3, cols: 5,
			data:    []float64{},
			indices: []int{},
			indptr:  []int{0, 0, 0, 0},
		},
		{
			name: "zero rows",
			rows: 0, cols: 4,
			data: []float64{}, indices: []int{}, indptr: []int{0},
			wantErr: true,
		},
		{
			name: "indptr wrong length",
			rows: 2, cols: 4,
			data: []float64{1}, indices: []int{0}, indptr: []int{0, 1},
			wantErr: true,
		},
		{
			name: "data and indices length differ",
			rows: 1, cols: 4,
			data: []float64{1, 2}, indices: []int{0}, indptr: []int{0, 2},
			wantErr: true,
		},
		{
			name: "final offset not total count",
			rows: 1, cols: 4,
			data: []float64{1, 2}, indices: []int{0, 1}, indptr: []int{0, 1},
			wantErr: true,
		},
		{
			name: "trailing empty row",
			rows: 2, cols: 4,
			data: []float64{1, 2}, indices: []int{0, 1}, indptr: []int{0, 2, 2},
		},
		{
			name: "decreasing offsets",
			rows: 2, cols: 4,
			data: []float64{1, 2}, indices: []int{0, 1}, indptr: []int{0, 3, 2},
			wantErr: true,
		},
		{
			name: "column index out of range",
			rows: 1, cols: 3,
			data: []float64{1}, indices: []int{3}, indptr: []int{0, 1},
			wantErr: true,
		},
		{
			name: "duplicate column in row",
			rows: 1, cols: 4,
			data: []float64{1, 2}, indices: []int{1, 1}, indptr: []int{0, 2},
			wantErr: true,
		},
		{
			name: "unsorted columns in row",
			rows: 1, cols: 4,
			data: []float64{1, 2}, indices: []int{2, 0}, indptr: []int{0, 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSR(tt.rows, tt.cols, tt.data, tt.indices, tt.indptr)
			if tt.wantErr && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewCSR error = %v, want ErrInvalidArgument", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewCSR returned unexpected error: %v", err)
			}
		})
	}
}

func TestCSRAccessors(t *testing.T) {
	m, err := NewCSR(2, 4,
		[]float64{1.5, -2, 3},
		[]int{0, 3, 1},
		[]int{0, 2, 3})
	if err != nil {
		t.Fatalf("NewCSR failed: %v", err)
	}

	if rows, cols := m.Dims(); rows != 2 || cols != 4 {
		t.Errorf("Dims() = %dx%d, want 2x4", rows, cols)
	}
	if m.NNZ() != 3 {
		t.Errorf("NNZ() = %d, want 3", m.NNZ())
	}
	if got := m.At(0, 3); got != -2 {
		t.Errorf("At(0,3) = %v, want -2", got)
	}
	if got := m.At(0, 1); got != 0 {
		t.Errorf("At(0,1) = %v, want 0", got)
	}
	if got := m.At(1, 1); got != 3 {
		t.Errorf("At(1,1) = %v, want 3", got)
	}

	vals, cols := m.Row(0)
	if len(vals) != 2 || vals[0] != 1.5 || cols[1] != 3 {
		t.Errorf("Row(0) = %v %v, want [1.5 -2] [0 3]", vals, cols)
	}
}

func TestCSRToDense(t *testing.T) {
	m, err := NewCSR(2, 3, []float64{2, -1}, []int{1, 0}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("NewCSR failed: %v", err)
	}

	d := m.ToDense()
	want := []float64{0, 2, 0, -1, 0, 0}
	for i, v := range want {
		if d.RawData()[i] != v {
			t.Fatalf("ToDense()[%d] = %v, want %v", i, d.RawData()[i], v)
		}
	}
}

// randomDense fills a dense matrix from a seeded generator.
func randomDense(t *testing.T, rows, cols int, seed int64) *Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	d, err := NewDense(rows, cols, data)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	return d
}

func TestDenseMulTransposedMatchesGonum(t *testing.T) {
	const (
		nRows       = 7
		nFeatures   = 40
		nComponents = 5
	)
	x := randomDense(t, nRows, nFeatures, 1)
	r, err := BuildSparseRandomMatrix(nComponents, nFeatures, 0.25, NewSource(2))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got := x.MulTransposed(r).(*Dense)

	var want mat.Dense
	want.Mul(x.ToGonum(), r.ToDense().ToGonum().T())

	for i := 0; i < nRows; i++ {
		for j := 0; j < nComponents; j++ {
			if math.Abs(got.At(i, j)-want.At(i, j)) > 1e-12 {
				t.Fatalf("product[%d,%d] = %v, gonum reference = %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestCSRMulTransposedMatchesDense(t *testing.T) {
	const (
		nRows       = 6
		nFeatures   = 30
		nComponents = 4
	)
	// A sparse input built the same way the projection matrix is.
	x, err := BuildSparseRandomMatrix(nRows, nFeatures, 0.2, NewSource(5))
	if err != nil {
		t.Fatalf("input build failed: %v", err)
	}
	r, err := BuildSparseRandomMatrix(nComponents, nFeatures, 0.3, NewSource(6))
	if err != nil {
		t.Fatalf("matrix build failed: %v", err)
	}

	sparse := x.MulTransposed(r).(*CSR)
	dense := x.ToDense().MulTransposed(r).(*Dense)

	if rows, cols := sparse.Dims(); rows != nRows || cols != nComponents {
		t.Fatalf("sparse product dims = %dx%d, want %dx%d", rows, cols, nRows, nComponents)
	}
	if err := sparse.validate(); err != nil {
		t.Fatalf("sparse product violates CSR invariants: %v", err)
	}

	for i := 0; i < nRows; i++ {
		for j := 0; j < nComponents; j++ {
			if math.Abs(sparse.At(i, j)-dense.At(i, j)) > 1e-12 {
				t.Fatalf("sparse product[%d,%d] = %v, dense path = %v", i, j, sparse.At(i, j), dense.At(i, j))
			}
		}
	}
}

func TestNewDenseValidation(t *testing.T) {
	if _, err := NewDense(2, 3, make([]float64, 5)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short data error = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewDense(0, 3, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero rows error = %v, want ErrInvalidArgument", err)
	}
}
