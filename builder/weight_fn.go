// Package builder provides the kernel functions used to turn a normalized
// distance z = d/h into a weight.
package builder

import (
	"fmt"
	"math"
	"strings"
)

// KernelFunc maps z = d/h, 0 ≤ z ≤ 1, to a kernel weight.
// Implementations are pure and never panic.
type KernelFunc func(z float64) float64

// Uniform weighs every neighbor inside the bandwidth equally: 1/2.
func Uniform(_ float64) float64 { return 0.5 }

// Triangular decays linearly: 1 - z.
func Triangular(z float64) float64 { return 1 - z }

// Quadratic is the Epanechnikov kernel: 3/4 (1 - z²).
func Quadratic(z float64) float64 { return 0.75 * (1 - z*z) }

// Quartic is the biweight kernel: 15/16 (1 - z²)².
func Quartic(z float64) float64 {
	u := 1 - z*z
	return (15.0 / 16.0) * u * u
}

// Gaussian is the standard normal density evaluated at z.
func Gaussian(z float64) float64 {
	return math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
}

// kernelByName is the registry behind ParseKernel and KernelNames.
var kernelByName = map[string]KernelFunc{
	"uniform":    Uniform,
	"triangular": Triangular,
	"quadratic":  Quadratic,
	"quartic":    Quartic,
	"gaussian":   Gaussian,
}

// KernelNames lists the names ParseKernel accepts, in a fixed order.
func KernelNames() []string {
	return []string{"uniform", "triangular", "quadratic", "quartic", "gaussian"}
}

// ParseKernel resolves a case-insensitive kernel name. "epanechnikov" and
// "bisquare" are accepted as aliases of quadratic and quartic.
func ParseKernel(name string) (KernelFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "epanechnikov":
		key = "quadratic"
	case "bisquare", "biweight":
		key = "quartic"
	}
	fn, ok := kernelByName[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return fn, nil
}

// inverseDistance returns d^alpha, alpha < 0.
func inverseDistance(d, alpha float64) float64 {
	if alpha == -1 {
		return 1 / d
	}
	return math.Pow(d, alpha)
}
