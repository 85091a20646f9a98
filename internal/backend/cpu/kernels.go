package cpu

// number is the element constraint for arithmetic kernels.
// Bool tensors never reach these paths.
type number interface {
	float32 | float64 | int32
}

// Fast-path kernels: all three slices share one shape.

func addKernel[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subKernel[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulKernel[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divKernel[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

// Broadcast-path kernels: operands are walked through stride tables where
// broadcast dimensions have stride 0.

func addBroadcast[T number](dst, a, b []T, plan binaryPlan) {
	for i := range dst {
		dst[i] = a[flatIndex(i, plan.outStrides, plan.aStrides)] + b[flatIndex(i, plan.outStrides, plan.bStrides)]
	}
}

func subBroadcast[T number](dst, a, b []T, plan binaryPlan) {
	for i := range dst {
		dst[i] = a[flatIndex(i, plan.outStrides, plan.aStrides)] - b[flatIndex(i, plan.outStrides, plan.bStrides)]
	}
}

func mulBroadcast[T number](dst, a, b []T, plan binaryPlan) {
	for i := range dst {
		dst[i] = a[flatIndex(i, plan.outStrides, plan.aStrides)] * b[flatIndex(i, plan.outStrides, plan.bStrides)]
	}
}

func divBroadcast[T number](dst, a, b []T, plan binaryPlan) {
	for i := range dst {
		dst[i] = a[flatIndex(i, plan.outStrides, plan.aStrides)] / b[flatIndex(i, plan.outStrides, plan.bStrides)]
	}
}
