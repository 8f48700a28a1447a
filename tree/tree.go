package tree

// Tree is an ordered, non-empty sequence of branches at one grammar
// level. Emptiness is rejected at the parser boundary; synthetic trees
// built in code are expected to carry at least one branch.
type Tree struct {
	depth    int
	branches []*Branch
}

// New creates a tree from an explicit branch list.
func New(branches ...*Branch) *Tree {
	return &Tree{branches: branches}
}

// FromValues creates a tree where each value becomes a leaf branch.
func FromValues(values ...*Value) *Tree {
	branches := make([]*Branch, len(values))
	for i, v := range values {
		branches[i] = NewLeaf(v)
	}
	return New(branches...)
}

// Branches returns the ordered branch list.
func (t *Tree) Branches() []*Branch {
	return t.branches
}

// Len returns the number of top-level branches.
func (t *Tree) Len() int {
	return len(t.branches)
}

// Depth returns the depth set by the last SetDepth pass. A freshly
// built tree reports zero whether or not the pass has run.
func (t *Tree) Depth() int {
	return t.depth
}

// SetDepthRoot runs the top-down depth pass starting at depth zero.
// Callers that parsed a tree must run this before level grouping.
func (t *Tree) SetDepthRoot() {
	t.SetDepth(0)
}

// SetDepth assigns this tree's depth and recurses into every subtree
// branch at depth+1. Arm chains are not descended; their extra depth is
// accounted for by the code generators' own walks.
func (t *Tree) SetDepth(depth int) {
	t.depth = depth
	for _, b := range t.branches {
		if sub := b.Subtree(); sub != nil {
			sub.SetDepth(depth + 1)
		}
	}
}

// CountValues returns the total number of values in the tree.
func (t *Tree) CountValues() int {
	n := 0
	for _, b := range t.branches {
		n += b.CountValues()
	}
	return n
}

// Equal reports structural equality of two trees: same branch count and
// pairwise equal branches. Depth and comma flags are ignored.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.branches) != len(other.branches) {
		return false
	}
	for i, b := range t.branches {
		if !b.Equal(other.branches[i]) {
			return false
		}
	}
	return true
}
