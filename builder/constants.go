// Package builder defines shared constants used by the weights builders,
// ensuring consistent defaults and validation across constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodContiguity is the canonical name for the Contiguity constructor.
	MethodContiguity = "Contiguity"
	// MethodDistanceBand is the canonical name for the DistanceBand constructor.
	MethodDistanceBand = "DistanceBand"
	// MethodKNN is the canonical name for the KNN constructor.
	MethodKNN = "KNN"
	// MethodKernel is the canonical name for the Kernel constructor.
	MethodKernel = "Kernel"
	// MethodPoints is the canonical name for the NewPoints constructor.
	MethodPoints = "NewPoints"
)

//-----------------------------------------------------------------------------
// Defaults
//-----------------------------------------------------------------------------

// DefaultEdgeWeight is the weight of every edge in binary weights.
const DefaultEdgeWeight float64 = 1

// DiagonalWeight is the self weight stored on the kernel diagonal.
const DiagonalWeight float64 = 1

// DefaultKernelK is the neighbor count used to size kernel bandwidths when
// the caller does not choose one.
const DefaultKernelK = 2

// BandwidthInflation widens computed bandwidths so that the k-th neighbor,
// which defines the bandwidth, falls strictly inside it (z < 1).
const BandwidthInflation = 1.0000001

// MinOrder is the lowest contiguity order.
const MinOrder = 1

// MinK is the lowest neighbor count for KNN and Kernel.
const MinK = 1
