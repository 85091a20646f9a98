package cpu

import (
	"fmt"
	"math"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Tanh applies the elementwise hyperbolic tangent.
func (c *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	out := c.floatUnaryOut("tanh", x)
	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Tanh(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), out.AsFloat64()
		for i, v := range src {
			dst[i] = math.Tanh(v)
		}
	}
	return out
}

// Sigmoid applies the elementwise logistic function 1/(1+exp(-x)).
func (c *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	out := c.floatUnaryOut("sigmoid", x)
	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(1.0 / (1.0 + math.Exp(-float64(v))))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), out.AsFloat64()
		for i, v := range src {
			dst[i] = 1.0 / (1.0 + math.Exp(-v))
		}
	}
	return out
}

// Softmax normalizes along dim with the max-subtraction trick for stability.
// Negative dim counts from the end.
func (c *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	out := c.floatUnaryOut("softmax", x)

	n := shape[dim]
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := x.NumElements() / (n * inner)

	switch x.DType() {
	case tensor.Float32:
		softmaxKernel(out.AsFloat32(), x.AsFloat32(), outer, n, inner)
	case tensor.Float64:
		softmaxKernel(out.AsFloat64(), x.AsFloat64(), outer, n, inner)
	}
	return out
}

func softmaxKernel[T float32 | float64](dst, src []T, outer, n, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in

			maxVal := src[base]
			for k := 1; k < n; k++ {
				if v := src[base+k*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum float64
			for k := 0; k < n; k++ {
				e := math.Exp(float64(src[base+k*inner] - maxVal))
				dst[base+k*inner] = T(e)
				sum += e
			}

			for k := 0; k < n; k++ {
				dst[base+k*inner] = T(float64(dst[base+k*inner]) / sum)
			}
		}
	}
}

// MulScalar multiplies every element by scalar.
func (c *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		s := float32(scalarToFloat64("mulscalar", scalar))
		src, dst := x.AsFloat32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = v * s
		}
	case tensor.Float64:
		s := scalarToFloat64("mulscalar", scalar)
		src, dst := x.AsFloat64(), out.AsFloat64()
		for i, v := range src {
			dst[i] = v * s
		}
	case tensor.Int32:
		s := int32(scalarToFloat64("mulscalar", scalar))
		src, dst := x.AsInt32(), out.AsInt32()
		for i, v := range src {
			dst[i] = v * s
		}
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}
	return out
}

// AddScalar adds scalar to every element.
func (c *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("addscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		s := float32(scalarToFloat64("addscalar", scalar))
		src, dst := x.AsFloat32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = v + s
		}
	case tensor.Float64:
		s := scalarToFloat64("addscalar", scalar)
		src, dst := x.AsFloat64(), out.AsFloat64()
		for i, v := range src {
			dst[i] = v + s
		}
	case tensor.Int32:
		s := int32(scalarToFloat64("addscalar", scalar))
		src, dst := x.AsInt32(), out.AsInt32()
		for i, v := range src {
			dst[i] = v + s
		}
	default:
		panic(fmt.Sprintf("addscalar: unsupported dtype %s", x.DType()))
	}
	return out
}

// floatUnaryOut allocates the output for a float-only unary op.
func (c *CPUBackend) floatUnaryOut(opName string, x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 && x.DType() != tensor.Float64 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (float32/float64 only)", opName, x.DType()))
	}
	out, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", opName, err))
	}
	return out
}

// scalarToFloat64 normalizes the accepted scalar kinds.
func scalarToFloat64(opName string, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", opName, scalar))
	}
}
