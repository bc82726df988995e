package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Colormap maps a normalized height in [-1,1] to an RGB color.
type Colormap func(z float32) mgl32.Vec3

// Gray replicates the height across the three channels.
func Gray(z float32) mgl32.Vec3 {
	return mgl32.Vec3{z, z, z}
}

// Normalize rescales values into [-1,1] using their own min and max.
// A constant input has no range to stretch and normalizes to all zeros.
// Values must be finite; FromGrid rejects grids that are not.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = 2*(v-lo)/span - 1
	}
	return out
}

// FromGrid triangulates a height field given as three equally shaped grids.
// Each axis is normalized into [-1,1] independently, each cell (i,j) is split along
// the (i,j)-(i+1,j+1) diagonal and every triangle gets a single flat normal.
// A nil colormap falls back to Gray.
func FromGrid(X, Y, Z [][]float64, cmap Colormap) (*Mesh, error) {
	rows, cols, err := gridShape(X, Y, Z)
	if err != nil {
		return nil, err
	}
	if cmap == nil {
		cmap = Gray
	}

	x := Normalize(ravel(X, cols))
	y := Normalize(ravel(Y, cols))
	z := Normalize(ravel(Z, cols))

	at := func(i, j int) mgl32.Vec3 {
		k := i*cols + j
		return mgl32.Vec3{float32(x[k]), float32(y[k]), float32(z[k])}
	}

	n := 6 * (rows - 1) * (cols - 1)
	vertices := make([]mgl32.Vec3, 0, n)
	normals := make([]mgl32.Vec3, 0, n)
	colors := make([]mgl32.Vec3, 0, n)

	emit := func(a, b, c mgl32.Vec3) {
		normal := a.Sub(b).Cross(c.Sub(b))
		for _, v := range [3]mgl32.Vec3{a, b, c} {
			vertices = append(vertices, v)
			normals = append(normals, normal)
			colors = append(colors, cmap(v[2]))
		}
	}

	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			p00, p01 := at(i, j), at(i, j+1)
			p10, p11 := at(i+1, j), at(i+1, j+1)
			emit(p00, p01, p11)
			emit(p00, p11, p10)
		}
	}

	return NewMesh(vertices, normals, colors)
}

func gridShape(X, Y, Z [][]float64) (rows, cols int, err error) {
	rows = len(X)
	if len(Y) != rows || len(Z) != rows {
		return 0, 0, fmt.Errorf("%w: grids have %d, %d and %d rows", ErrInvalidInput, len(X), len(Y), len(Z))
	}
	if rows < 2 {
		return 0, 0, fmt.Errorf("%w: grid needs at least 2 rows, got %d", ErrInvalidInput, rows)
	}
	cols = len(X[0])
	if cols < 2 {
		return 0, 0, fmt.Errorf("%w: grid needs at least 2 columns, got %d", ErrInvalidInput, cols)
	}
	for i := 0; i < rows; i++ {
		if len(X[i]) != cols || len(Y[i]) != cols || len(Z[i]) != cols {
			return 0, 0, fmt.Errorf("%w: row %d is not %d columns wide in every grid", ErrInvalidInput, i, cols)
		}
		for j := 0; j < cols; j++ {
			if !finite(X[i][j]) || !finite(Y[i][j]) || !finite(Z[i][j]) {
				return 0, 0, fmt.Errorf("%w: non-finite value at (%d,%d)", ErrInvalidInput, i, j)
			}
		}
	}
	return rows, cols, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ravel(g [][]float64, cols int) []float64 {
	out := make([]float64, 0, len(g)*cols)
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Meshgrid expands two coordinate vectors into row-major X and Y grids,
// with len(ys) rows and len(xs) columns.
func Meshgrid(xs, ys []float64) (X, Y [][]float64) {
	X = make([][]float64, len(ys))
	Y = make([][]float64, len(ys))
	for i, yv := range ys {
		X[i] = make([]float64, len(xs))
		Y[i] = make([]float64, len(xs))
		for j, xv := range xs {
			X[i][j] = xv
			Y[i][j] = yv
		}
	}
	return X, Y
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
