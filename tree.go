package variousdbscan

import (
	"fmt"
	"sort"
)

// rootHandle is the arena index of the root node. The root never owns points;
// it only anchors the depth-1 clusters.
const rootHandle = 0

// node is one cluster in the progressive hierarchy. Nodes live in the tree's
// arena and refer to each other by handle (arena index), never by pointer.
// Parent handles walk strictly toward the root, so ancestor traversal cannot
// cycle.
type node struct {
	label    int   // cluster id among siblings; -1 for the root
	depth    int   // root = 0
	parent   int   // handle of the owning node; -1 for the root
	children []int // handles, in creation order
	points   []int // original distance-matrix indices attributed to this node
}

// tree is the state of one clustering run: the node arena, the shared
// read-only distance matrix, and the diagnostic count of primitive calls.
// Structure is fixed once growth completes; resolveOverlaps mutates only
// point sets.
type tree struct {
	dist           []float64 // row-major n×n, read-only
	n              int
	nodes          []node
	primitiveCalls int
}

func newTree(dist []float64, n int) *tree {
	t := &tree{dist: dist, n: n}
	t.nodes = append(t.nodes, node{label: -1, depth: 0, parent: -1})
	return t
}

// grow performs a single level of tree growth under parent: it clusters the
// given subset of original point indices at radius eps and attaches one
// child node per non-empty density cluster, owning the original indices of
// that cluster's members. Points labeled Noise stay with the parent. grow
// never recurses.
func (t *tree) grow(parent int, pts []int, eps float64, minPts int, p Primitive) error {
	m := len(pts)
	sub := make([]float64, m*m)
	for a, i := range pts {
		for b, j := range pts {
			sub[a*m+b] = t.dist[i*t.n+j]
		}
	}

	labels, err := p.Cluster(sub, m, eps, minPts)
	t.primitiveCalls++
	if err != nil {
		return fmt.Errorf("%w at depth %d: %w", ErrPrimitive, t.nodes[parent].depth+1, err)
	}
	if len(labels) != m {
		return fmt.Errorf("%w: got %d labels for %d points", ErrPrimitive, len(labels), m)
	}

	maxLabel := -1
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	for cluster := 0; cluster <= maxLabel; cluster++ {
		var members []int
		for a, l := range labels {
			if l == cluster {
				members = append(members, pts[a])
			}
		}
		if len(members) == 0 {
			continue
		}
		h := len(t.nodes)
		t.nodes = append(t.nodes, node{
			label:  cluster,
			depth:  t.nodes[parent].depth + 1,
			parent: parent,
			points: members,
		})
		t.nodes[parent].children = append(t.nodes[parent].children, h)
	}

	return nil
}

// atDepth returns the handles of all nodes at the given depth, in creation
// order.
func (t *tree) atDepth(depth int) []int {
	var hs []int
	for h := range t.nodes {
		if t.nodes[h].depth == depth {
			hs = append(hs, h)
		}
	}
	return hs
}

// byDepthDescending returns all non-root handles ordered by decreasing
// depth; within one depth, creation order.
func (t *tree) byDepthDescending() []int {
	hs := make([]int, 0, len(t.nodes)-1)
	for h := 1; h < len(t.nodes); h++ {
		hs = append(hs, h)
	}
	sort.SliceStable(hs, func(i, j int) bool {
		return t.nodes[hs[i]].depth > t.nodes[hs[j]].depth
	})
	return hs
}

// resolveOverlaps enforces disjointness across the hierarchy: each node's
// points are removed from every one of its ancestors, so a point remains
// only in the deepest node that holds it. Nodes are visited deepest first;
// the outcome is order independent since subtraction only targets ancestors.
func (t *tree) resolveOverlaps() {
	for _, h := range t.byDepthDescending() {
		owned := make(map[int]struct{}, len(t.nodes[h].points))
		for _, p := range t.nodes[h].points {
			owned[p] = struct{}{}
		}
		for a := t.nodes[h].parent; a != -1; a = t.nodes[a].parent {
			t.nodes[a].points = subtract(t.nodes[a].points, owned)
		}
	}
}

// subtract removes from pts every index present in drop, preserving order.
func subtract(pts []int, drop map[int]struct{}) []int {
	kept := pts[:0]
	for _, p := range pts {
		if _, ok := drop[p]; !ok {
			kept = append(kept, p)
		}
	}
	return kept
}

// extract returns the post-resolution point sets of all nodes holding at
// least minPts points, deepest first, along with the depth each cluster was
// discovered at. Undersized nodes are dropped and their points do not
// reappear anywhere in the output.
func (t *tree) extract(minPts int) (clusters [][]int, depths []int) {
	for _, h := range t.byDepthDescending() {
		if len(t.nodes[h].points) < minPts {
			continue
		}
		clusters = append(clusters, t.nodes[h].points)
		depths = append(depths, t.nodes[h].depth)
	}
	return clusters, depths
}
