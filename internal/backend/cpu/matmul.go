package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/parallel"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// MatMul computes the 2D matrix product [M, K] @ [K, N] -> [M, N].
func (c *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: need 2D tensors, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	out, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulKernel(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, c.par)
	case tensor.Float64:
		matmulKernel(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, c.par)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return out
}

// matmulKernel is a cache-friendly ikj loop: the inner walk is over
// contiguous rows of b and dst. Rows of dst are disjoint, so they fan out
// across workers.
func matmulKernel[T float32 | float64](dst, a, b []T, m, k, n int, par parallel.Config) {
	parallel.For(m, func(i int) {
		dstRow := dst[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			av := a[i*k+kk]
			if av == 0 {
				continue
			}
			bRow := b[kk*n : (kk+1)*n]
			for j := range dstRow {
				dstRow[j] += av * bRow[j]
			}
		}
	}, par)
}
