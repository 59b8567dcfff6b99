package variousdbscan

import "fmt"

// Noise is the label a Primitive assigns to points that are not density
// reachable from any core point.
const Noise = -1

// unclassified marks points the default primitive has not visited yet.
const unclassified = -2

// Primitive is the single-pass density clustering routine invoked once per
// tree node per level. dist is a row-major n×n distance matrix restricted to
// the points being clustered. Implementations return one label per point:
// a cluster id in 0..k-1 or Noise. Output must be deterministic for fixed
// inputs.
type Primitive interface {
	Cluster(dist []float64, n int, eps float64, minPts int) ([]int, error)
}

// DBSCAN is the default Primitive: density-based spatial clustering with
// noise over a precomputed distance matrix. A point is a core point when at
// least minPts points (itself included) lie within eps of it; a cluster is
// the set of points density reachable from one group of mutually reachable
// core points. Clusters are numbered 0..k-1 in the order their first core
// point is visited, scanning by ascending index, and a border point joins
// the cluster of the first core point that reaches it.
type DBSCAN struct{}

// Cluster implements Primitive.
func (DBSCAN) Cluster(dist []float64, n int, eps float64, minPts int) ([]int, error) {
	if len(dist) != n*n {
		return nil, fmt.Errorf("variousdbscan: dist length %d does not match n*n = %d (n=%d)", len(dist), n*n, n)
	}
	if n == 0 {
		return nil, nil
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unclassified
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}

		neighbors := rangeQuery(dist, n, i, eps)
		if len(neighbors) < minPts {
			labels[i] = Noise
			continue
		}

		// Start a new cluster and expand it from the seed set.
		labels[i] = clusterID
		seed := append([]int(nil), neighbors...)
		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if labels[q] == Noise {
				labels[q] = clusterID // border point
			}
			if labels[q] != unclassified {
				continue
			}
			labels[q] = clusterID

			qNeighbors := rangeQuery(dist, n, q, eps)
			if len(qNeighbors) >= minPts {
				seed = append(seed, qNeighbors...)
			}
		}
		clusterID++
	}

	return labels, nil
}

// rangeQuery returns the indices of all points within eps of point i,
// including i itself.
func rangeQuery(dist []float64, n, i int, eps float64) []int {
	var result []int
	for j := 0; j < n; j++ {
		if dist[i*n+j] <= eps {
			result = append(result, j)
		}
	}
	return result
}
