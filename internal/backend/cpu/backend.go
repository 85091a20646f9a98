// Package cpu implements tensor.Backend in pure Go.
package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/parallel"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// CPUBackend computes tensor operations on the host CPU. Row-parallel
// kernels fan out per the parallel config; everything else is sequential.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a CPU backend with fan-out sized to the host.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU, par: parallel.DefaultConfig()}
}

// Name returns the backend name.
func (c *CPUBackend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (c *CPUBackend) Device() tensor.Device {
	return c.device
}

// binaryPlan holds the resolved output tensor and, for the broadcast path,
// the stride tables needed to walk the operands.
type binaryPlan struct {
	out        *tensor.RawTensor
	fast       bool // same shapes, plain elementwise walk
	aStrides   []int
	bStrides   []int
	outStrides []int
}

// prepBinary validates shapes, allocates the output and precomputes
// broadcast strides for an elementwise binary operation.
func (c *CPUBackend) prepBinary(opName string, a, b *tensor.RawTensor) binaryPlan {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", opName, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", opName, err))
	}

	out, err := tensor.NewRaw(outShape, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", opName, err))
	}

	plan := binaryPlan{out: out, fast: !needsBroadcast}
	if needsBroadcast {
		plan.aStrides = broadcastStrides(a.Shape(), outShape)
		plan.bStrides = broadcastStrides(b.Shape(), outShape)
		plan.outStrides = outShape.ComputeStrides()
	}
	return plan
}

// Add performs elementwise addition with broadcasting.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	plan := c.prepBinary("add", a, b)
	switch a.DType() {
	case tensor.Float32:
		if plan.fast {
			addKernel(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			addBroadcast(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), plan)
		}
	case tensor.Float64:
		if plan.fast {
			addKernel(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			addBroadcast(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), plan)
		}
	case tensor.Int32:
		if plan.fast {
			addKernel(plan.out.AsInt32(), a.AsInt32(), b.AsInt32())
		} else {
			addBroadcast(plan.out.AsInt32(), a.AsInt32(), b.AsInt32(), plan)
		}
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}
	return plan.out
}

// Sub performs elementwise subtraction with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	plan := c.prepBinary("sub", a, b)
	switch a.DType() {
	case tensor.Float32:
		if plan.fast {
			subKernel(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			subBroadcast(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), plan)
		}
	case tensor.Float64:
		if plan.fast {
			subKernel(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			subBroadcast(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), plan)
		}
	case tensor.Int32:
		if plan.fast {
			subKernel(plan.out.AsInt32(), a.AsInt32(), b.AsInt32())
		} else {
			subBroadcast(plan.out.AsInt32(), a.AsInt32(), b.AsInt32(), plan)
		}
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", a.DType()))
	}
	return plan.out
}

// Mul performs elementwise multiplication with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	plan := c.prepBinary("mul", a, b)
	switch a.DType() {
	case tensor.Float32:
		if plan.fast {
			mulKernel(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			mulBroadcast(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), plan)
		}
	case tensor.Float64:
		if plan.fast {
			mulKernel(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			mulBroadcast(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), plan)
		}
	case tensor.Int32:
		if plan.fast {
			mulKernel(plan.out.AsInt32(), a.AsInt32(), b.AsInt32())
		} else {
			mulBroadcast(plan.out.AsInt32(), a.AsInt32(), b.AsInt32(), plan)
		}
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", a.DType()))
	}
	return plan.out
}

// Div performs elementwise division with broadcasting.
func (c *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	plan := c.prepBinary("div", a, b)
	switch a.DType() {
	case tensor.Float32:
		if plan.fast {
			divKernel(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			divBroadcast(plan.out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), plan)
		}
	case tensor.Float64:
		if plan.fast {
			divKernel(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			divBroadcast(plan.out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), plan)
		}
	case tensor.Int32:
		if plan.fast {
			divKernel(plan.out.AsInt32(), a.AsInt32(), b.AsInt32())
		} else {
			divBroadcast(plan.out.AsInt32(), a.AsInt32(), b.AsInt32(), plan)
		}
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", a.DType()))
	}
	return plan.out
}
