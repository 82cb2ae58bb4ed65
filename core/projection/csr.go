package projection

import (
	"fmt"
	"sort"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
)

// =============================================================================
// Matrix Abstraction
// =============================================================================

// Matrix is the input surface the projector needs: a shape query and a
// multiply by the transpose of a sparse matrix. Dense and CSR both satisfy
// it, and the product keeps the representation of the left operand: dense in,
// dense out; sparse in, sparse out.
type Matrix interface {
	// Dims returns the number of rows and columns.
	Dims() (rows, cols int)

	// MulTransposed computes m × pᵀ. The caller guarantees the column count
	// of m equals the column count of p.
	MulTransposed(p *CSR) Matrix
}

// =============================================================================
// Dense Matrix
// =============================================================================

// Dense is a row-major dense matrix backed by a flat float64 slice.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense wraps data as a rows×cols row-major matrix. The slice is not
// copied. Length must equal rows*cols.
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dense shape must be positive, got %dx%d", ErrInvalidArgument, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: dense data length %d != %d*%d", ErrInvalidArgument, len(data), rows, cols)
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// Dims returns the number of rows and columns.
func (d *Dense) Dims() (int, int) { return d.rows, d.cols }

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float64 { return d.data[i*d.cols+j] }

// Row returns a view of row i. Mutating it mutates the matrix.
func (d *Dense) Row(i int) []float64 { return d.data[i*d.cols : (i+1)*d.cols] }

// RawData returns the backing row-major slice.
func (d *Dense) RawData() []float64 { return d.data }

// ToGonum returns the matrix as a gonum *mat.Dense sharing no storage.
func (d *Dense) ToGonum() *mat.Dense {
	out := make([]float64, len(d.data))
	copy(out, d.data)
	return mat.NewDense(d.rows, d.cols, out)
}

// MulTransposed computes d × pᵀ, producing a dense [d.rows × p.rows] result.
// Each output cell gathers the sparse row of p against the dense input row,
// so work is proportional to d.rows × nnz(p).
func (d *Dense) MulTransposed(p *CSR) Matrix {
	out := make([]float64, d.rows*p.rows)
	for i := 0; i < d.rows; i++ {
		row := d.Row(i)
		outRow := out[i*p.rows : (i+1)*p.rows]
		for c := 0; c < p.rows; c++ {
			vals, cols := p.Row(c)
			var sum float64
			for k, j := range cols {
				sum += row[j] * vals[k]
			}
			outRow[c] = sum
		}
	}
	return &Dense{rows: d.rows, cols: p.rows, data: out}
}

// =============================================================================
// CSR Matrix
// =============================================================================

// CSR is a compressed sparse row matrix: nonzero values, their column
// indices, and per-row offsets into both. Row i occupies the half-open slice
// [indptr[i], indptr[i+1]) of data and indices, with column indices strictly
// increasing inside each row.
type CSR struct {
	rows, cols int
	data       []float64
	indices    []int
	indptr     []int
}

// NewCSR assembles a CSR matrix from its three arrays and validates every
// structural invariant before returning it.
func NewCSR(rows, cols int, data []float64, indices, indptr []int) (*CSR, error) {
	m := &CSR{rows: rows, cols: cols, data: data, indices: indices, indptr: indptr}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CSR) validate() error {
	if m.rows <= 0 || m.cols <= 0 {
		return fmt.Errorf("%w: csr shape must be positive, got %dx%d", ErrInvalidArgument, m.rows, m.cols)
	}
	if len(m.indptr) != m.rows+1 {
		return fmt.Errorf("%w: csr indptr length %d != rows+1 (%d)", ErrInvalidArgument, len(m.indptr), m.rows+1)
	}
	if len(m.data) != len(m.indices) {
		return fmt.Errorf("%w: csr data length %d != indices length %d", ErrInvalidArgument, len(m.data), len(m.indices))
	}
	if m.indptr[0] != 0 || m.indptr[m.rows] != len(m.data) {
		return fmt.Errorf("%w: csr indptr must span [0, %d], got [%d, %d]",
			ErrInvalidArgument, len(m.data), m.indptr[0], m.indptr[m.rows])
	}
	for i := 0; i < m.rows; i++ {
		start, end := m.indptr[i], m.indptr[i+1]
		if start < 0 || start > end || end > len(m.indices) {
			return fmt.Errorf("%w: csr indptr invalid at row %d: [%d, %d)", ErrInvalidArgument, i, start, end)
		}
		for k := start; k < end; k++ {
			if m.indices[k] < 0 || m.indices[k] >= m.cols {
				return fmt.Errorf("%w: csr column index %d out of range at row %d", ErrInvalidArgument, m.indices[k], i)
			}
			if k > start && m.indices[k] <= m.indices[k-1] {
				return fmt.Errorf("%w: csr column indices not strictly increasing at row %d", ErrInvalidArgument, i)
			}
		}
	}
	return nil
}

// Dims returns the number of rows and columns.
func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

// NNZ returns the number of stored nonzero entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Row returns views of row i's values and column indices.
func (m *CSR) Row(i int) (vals []float64, cols []int) {
	start, end := m.indptr[i], m.indptr[i+1]
	return m.data[start:end], m.indices[start:end]
}

// At returns the element at row i, column j, zero if not stored.
func (m *CSR) At(i, j int) float64 {
	vals, cols := m.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k]
	}
	return 0
}

// RawData returns the backing value slice. Callers must treat it read-only.
func (m *CSR) RawData() []float64 { return m.data }

// scale multiplies every stored value in place.
func (m *CSR) scale(s float64) {
	if len(m.data) == 0 {
		return
	}
	vek.MulNumber_Inplace(m.data, s)
}

// ToDense materializes the matrix, zeros included.
func (m *CSR) ToDense() *Dense {
	out := make([]float64, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		vals, cols := m.Row(i)
		for k, j := range cols {
			out[i*m.cols+j] = vals[k]
		}
	}
	return &Dense{rows: m.rows, cols: m.cols, data: out}
}

// MulTransposed computes m × pᵀ, producing a CSR [m.rows × p.rows] result.
// Each output cell is a sparse dot of two sorted index lists; exact zero
// products are not stored, so the result is at least as sparse as the
// multiplication dictates.
func (m *CSR) MulTransposed(p *CSR) Matrix {
	data := make([]float64, 0, m.rows)
	indices := make([]int, 0, m.rows)
	indptr := make([]int, 1, m.rows+1)
	for i := 0; i < m.rows; i++ {
		aVals, aCols := m.Row(i)
		for c := 0; c < p.rows; c++ {
			bVals, bCols := p.Row(c)
			if dot := sparseDot(aVals, aCols, bVals, bCols); dot != 0 {
				data = append(data, dot)
				indices = append(indices, c)
			}
		}
		indptr = append(indptr, len(data))
	}
	return &CSR{rows: m.rows, cols: p.rows, data: data, indices: indices, indptr: indptr}
}

// sparseDot merges two ascending index lists and sums products at matches.
func sparseDot(aVals []float64, aCols []int, bVals []float64, bCols []int) float64 {
	var sum float64
	var i, j int
	for i < len(aCols) && j < len(bCols) {
		switch {
		case aCols[i] == bCols[j]:
			sum += aVals[i] * bVals[j]
			i++
			j++
		case aCols[i] < bCols[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
