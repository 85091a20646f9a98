// Package backend resolves which compute device a training run uses.
//
// Only the CPU backend is built in; accelerator names are recognized so a
// request for one degrades to the CPU with a warning instead of failing the
// run.
package backend

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Resolve maps a requested device name to the device that will actually run.
//
// "cpu", "auto" and "" resolve to the CPU. Known accelerator names resolve
// to the CPU with a non-empty fallback note the caller should surface as a
// warning; an unavailable device is a degraded run, not a failed one.
// Unknown names are an error.
func Resolve(requested string) (tensor.Device, string, error) {
	switch strings.ToLower(requested) {
	case "", "auto", "cpu":
		return tensor.CPU, "", nil
	case "cuda":
		return tensor.CPU, "cuda is not available in this build, falling back to cpu", nil
	case "webgpu":
		return tensor.CPU, "webgpu is not available in this build, falling back to cpu", nil
	default:
		return tensor.CPU, "", fmt.Errorf("unknown device %q (want cpu, cuda, webgpu or auto)", requested)
	}
}

// CPUDescription summarizes the host CPU for startup logging: brand, core
// count, and the SIMD level the hot loops can hope for.
func CPUDescription() string {
	var features []string
	if cpuid.CPU.Supports(cpuid.AVX512F) {
		features = append(features, "avx512")
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		features = append(features, "avx2")
	}
	if cpuid.CPU.Supports(cpuid.FMA3) {
		features = append(features, "fma3")
	}

	desc := fmt.Sprintf("%s (%d cores", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores)
	if len(features) > 0 {
		desc += ", " + strings.Join(features, " ")
	}
	return desc + ")"
}
