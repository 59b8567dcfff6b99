// Package variousdbscan implements progressive multi-density clustering over
// a precomputed distance matrix.
//
// The algorithm runs a density clustering primitive (DBSCAN by default) on
// the full point set, then recursively re-clusters each discovered cluster
// at a tighter radius, building a hierarchy of clusters of varying density.
// Once no denser sub-structure can be found, every point is attributed to
// the densest cluster it still qualifies for, and the clusters holding at
// least MinPoints points are returned, densest first.
//
// Basic usage:
//
//	cfg := variousdbscan.DefaultConfig()
//	cfg.MinPoints = 3
//	result, err := variousdbscan.Cluster(distMatrix, n, cfg)
//	// result.Clusters are disjoint point-index sets, densest first
//	// result.Labels[i] is the cluster index for point i (-1 = unclustered)
//	// result.PrimitiveCalls is the number of primitive invocations
//
// For gonum distance matrices:
//
//	result, err := variousdbscan.ClusterMatrix(symDense, cfg)
//
// The radius schedule is controlled by Config.Epsilon and
// Config.UpdateEpsilon (halving by default), and tree growth is bounded by
// Config.MaxDepth. The density primitive is pluggable through
// Config.Primitive.
package variousdbscan
