package variousdbscan

import (
	"reflect"
	"testing"
)

// addNode appends a node to the arena and wires it under parent.
func (t *tree) addNode(parent, label, depth int, points []int) int {
	h := len(t.nodes)
	t.nodes = append(t.nodes, node{label: label, depth: depth, parent: parent, points: points})
	t.nodes[parent].children = append(t.nodes[parent].children, h)
	return h
}

func TestTreeGrow_AttachesChildren(t *testing.T) {
	dist, n := groupedMatrix([]int{0, 0, 0, 1, 1, 1}, 0.1, 5.0)
	tr := newTree(dist, n)

	if err := tr.grow(rootHandle, []int{0, 1, 2, 3, 4, 5}, 0.5, 3, DBSCAN{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(tr.nodes[rootHandle].children); got != 2 {
		t.Fatalf("expected 2 children, got %d", got)
	}
	if tr.primitiveCalls != 1 {
		t.Errorf("expected 1 primitive call, got %d", tr.primitiveCalls)
	}
	for i, h := range tr.nodes[rootHandle].children {
		child := tr.nodes[h]
		if child.parent != rootHandle {
			t.Errorf("child %d parent = %d, want root", h, child.parent)
		}
		if child.depth != 1 {
			t.Errorf("child %d depth = %d, want 1", h, child.depth)
		}
		if child.label != i {
			t.Errorf("child %d label = %d, want %d", h, child.label, i)
		}
	}
	if got := tr.nodes[tr.nodes[rootHandle].children[0]].points; !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("first child points = %v, want [0 1 2]", got)
	}
	if got := tr.nodes[tr.nodes[rootHandle].children[1]].points; !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Errorf("second child points = %v, want [3 4 5]", got)
	}
}

// grow maps the primitive's local labels back to original matrix indices:
// clustering a strict subset must attribute original, not submatrix, indices.
func TestTreeGrow_RemapsSubsetIndices(t *testing.T) {
	// Points 2, 4, 6 tight; everything else far away.
	n := 8
	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				dist[i*n+j] = 9.0
			}
		}
	}
	for _, i := range []int{2, 4, 6} {
		for _, j := range []int{2, 4, 6} {
			if i != j {
				dist[i*n+j] = 0.1
			}
		}
	}

	tr := newTree(dist, n)
	if err := tr.grow(rootHandle, []int{2, 4, 6}, 0.5, 3, DBSCAN{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(tr.nodes[rootHandle].children); got != 1 {
		t.Fatalf("expected 1 child, got %d", got)
	}
	if got := tr.nodes[1].points; !reflect.DeepEqual(got, []int{2, 4, 6}) {
		t.Errorf("child points = %v, want [2 4 6]", got)
	}
}

func TestTreeGrow_AllNoiseProducesNoChildren(t *testing.T) {
	dist, n := lineMatrix([]float64{0, 10, 20})
	tr := newTree(dist, n)

	if err := tr.grow(rootHandle, []int{0, 1, 2}, 0.5, 3, DBSCAN{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(tr.nodes[rootHandle].children); got != 0 {
		t.Errorf("expected no children, got %d", got)
	}
}

func TestTreeResolveOverlaps(t *testing.T) {
	tr := newTree(nil, 6)
	a := tr.addNode(rootHandle, 0, 1, []int{0, 1, 2, 3, 4, 5})
	b := tr.addNode(a, 0, 2, []int{0, 1, 2})
	c := tr.addNode(a, 1, 2, []int{3, 4})
	d := tr.addNode(b, 0, 3, []int{0})

	tr.resolveOverlaps()

	if got := tr.nodes[a].points; !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("a.points = %v, want [5]", got)
	}
	if got := tr.nodes[b].points; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("b.points = %v, want [1 2]", got)
	}
	if got := tr.nodes[c].points; !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("c.points = %v, want [3 4]", got)
	}
	if got := tr.nodes[d].points; !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("d.points = %v, want [0]", got)
	}
}

func TestTreeResolveOverlaps_Idempotent(t *testing.T) {
	tr := newTree(nil, 4)
	a := tr.addNode(rootHandle, 0, 1, []int{0, 1, 2, 3})
	tr.addNode(a, 0, 2, []int{0, 1})

	tr.resolveOverlaps()
	first := append([]int(nil), tr.nodes[a].points...)
	tr.resolveOverlaps()

	if !reflect.DeepEqual(tr.nodes[a].points, first) {
		t.Errorf("second resolve changed points: %v vs %v", tr.nodes[a].points, first)
	}
}

func TestTreeExtract_OrderAndSizeFloor(t *testing.T) {
	tr := newTree(nil, 10)
	a := tr.addNode(rootHandle, 0, 1, []int{8, 9})       // below floor, dropped
	tr.addNode(a, 0, 2, []int{0, 1, 2})                  // depth 2
	b := tr.addNode(rootHandle, 1, 1, []int{3, 4, 5, 6}) // depth 1
	tr.addNode(b, 0, 2, []int{7})                        // below floor, dropped

	clusters, depths := tr.extract(3)

	wantClusters := [][]int{{0, 1, 2}, {3, 4, 5, 6}}
	if !reflect.DeepEqual(clusters, wantClusters) {
		t.Errorf("clusters = %v, want %v", clusters, wantClusters)
	}
	if !reflect.DeepEqual(depths, []int{2, 1}) {
		t.Errorf("depths = %v, want [2 1]", depths)
	}
}
