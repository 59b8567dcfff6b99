package variousdbscan

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultMaxDepth bounds tree growth when Config.MaxDepth is left zero. It
// keeps runs with a non-shrinking UpdateEpsilon from growing the tree
// forever; with the default halving schedule, growth stops on its own long
// before reaching it.
const DefaultMaxDepth = 64

// Config controls progressive clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Epsilon is the neighborhood radius used for the first clustering pass
	// over the full point set. Must be > 0. Default: 0.5.
	Epsilon float64

	// MinPoints is the minimum neighbor count required to form a dense
	// cluster, fixed for the whole run. It is also the size floor for
	// extracted clusters. Must be >= 1. Default: 5.
	MinPoints int

	// UpdateEpsilon computes the radius for the next depth from the current
	// one. It should return a strictly smaller positive value; this is not
	// verified, and a non-shrinking function terminates only through
	// MaxDepth. Default: halving.
	UpdateEpsilon func(float64) float64

	// MaxDepth caps the number of tree levels grown. Negative means
	// unbounded, which requires a shrinking UpdateEpsilon to terminate.
	// Default: DefaultMaxDepth.
	MaxDepth int

	// Primitive is the single-pass density clustering routine invoked at
	// every node. Default: DBSCAN{}.
	Primitive Primitive
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Epsilon:   0.5,
		MinPoints: 5,
		MaxDepth:  DefaultMaxDepth,
		Primitive: DBSCAN{},
	}
}

// Result contains the output of a progressive clustering run.
type Result struct {
	// Clusters holds the point-index sets of the surviving clusters, ordered
	// from deepest (densest) to shallowest. Indices refer to the original
	// distance matrix. The sets are pairwise disjoint and each has at least
	// MinPoints members.
	Clusters [][]int

	// Depths[i] is the tree depth cluster i was discovered at (1 = found at
	// the original Epsilon). Non-increasing, aligned with Clusters.
	Depths []int

	// Labels assigns each point the index of its cluster in Clusters, or -1
	// for points that ended up in no surviving cluster.
	Labels []int

	// PrimitiveCalls is the number of primitive invocations performed.
	// Diagnostic only.
	PrimitiveCalls int
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = 0.5
	}
	if cfg.MinPoints == 0 {
		cfg.MinPoints = 5
	}
	if cfg.UpdateEpsilon == nil {
		cfg.UpdateEpsilon = func(eps float64) float64 { return eps / 2 }
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Primitive == nil {
		cfg.Primitive = DBSCAN{}
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive
// error if not.
func validateConfig(cfg *Config) error {
	if cfg.MinPoints < 1 {
		return fmt.Errorf("%w: MinPoints must be >= 1, got %d", ErrInvalidParameter, cfg.MinPoints)
	}
	if cfg.Epsilon <= 0 {
		return fmt.Errorf("%w: Epsilon must be > 0, got %f", ErrInvalidParameter, cfg.Epsilon)
	}
	return nil
}

// Cluster performs progressive multi-density clustering over a precomputed
// distance matrix. distMatrix is a flat []float64 of length n*n in row-major
// order, where distMatrix[i*n+j] is the distance between points i and j. It
// is assumed square, symmetric, non-negative, and zero on the diagonal;
// beyond its length, no validation is performed and malformed contents are
// the caller's responsibility.
func Cluster(distMatrix []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(distMatrix) != n*n {
		return nil, fmt.Errorf("%w: distMatrix length %d does not match n*n = %d (n=%d)",
			ErrInvalidParameter, len(distMatrix), n*n, n)
	}
	if n == 0 {
		return &Result{Clusters: [][]int{}, Depths: []int{}, Labels: []int{}}, nil
	}
	return cluster(distMatrix, n, &cfg)
}

// ClusterMatrix is a convenience wrapper around [Cluster] for gonum distance
// matrices, such as a *mat.SymDense of pairwise distances.
func ClusterMatrix(m mat.Matrix, cfg Config) (*Result, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: distance matrix must be square, got %dx%d", ErrInvalidParameter, r, c)
	}
	flat := make([]float64, r*r)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			flat[i*r+j] = m.At(i, j)
		}
	}
	return Cluster(flat, r, cfg)
}

// cluster runs the full pipeline: grow the tree level by level at shrinking
// radii, resolve overlaps, extract the surviving clusters.
func cluster(distMatrix []float64, n int, cfg *Config) (*Result, error) {
	t := newTree(distMatrix, n)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	eps := cfg.Epsilon
	if err := t.grow(rootHandle, all, eps, cfg.MinPoints, cfg.Primitive); err != nil {
		return nil, err
	}

	for depth := 1; cfg.MaxDepth < 0 || depth < cfg.MaxDepth; depth++ {
		level := t.atDepth(depth)
		if len(level) == 0 {
			break
		}
		eps = cfg.UpdateEpsilon(eps)
		for _, h := range level {
			if err := t.grow(h, t.nodes[h].points, eps, cfg.MinPoints, cfg.Primitive); err != nil {
				return nil, err
			}
		}
	}

	t.resolveOverlaps()
	clusters, depths := t.extract(cfg.MinPoints)
	if clusters == nil {
		clusters = [][]int{}
		depths = []int{}
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	for ci, members := range clusters {
		for _, p := range members {
			labels[p] = ci
		}
	}

	return &Result{
		Clusters:       clusters,
		Depths:         depths,
		Labels:         labels,
		PrimitiveCalls: t.primitiveCalls,
	}, nil
}
