// Package tree defines the in-memory model for startup trees: values,
// branches, and ordered branch containers with depth bookkeeping.
package tree

// BranchKind discriminates the three branch variants.
type BranchKind int

const (
	// KindLeaf is a value with no continuation.
	KindLeaf BranchKind = iota
	// KindArm is a value followed by exactly one child branch.
	KindArm
	// KindSubtree is a value fanning out into a nested tree.
	KindSubtree
)

func (k BranchKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindArm:
		return "arm"
	case KindSubtree:
		return "subtree"
	default:
		return "unknown"
	}
}

// Branch is one grammar production: a value with an optional continuation.
// Exactly one of {no continuation, child branch, child tree} holds,
// selected by kind.
type Branch struct {
	kind  BranchKind
	value *Value
	child *Branch
	tree  *Tree

	// trailingComma records whether this branch was followed by a comma
	// in the source. It affects round-trip display only, never structure.
	trailingComma bool
}

// NewLeaf creates a branch with no continuation.
func NewLeaf(v *Value) *Branch {
	return &Branch{kind: KindLeaf, value: v}
}

// NewArm creates a branch whose value is followed by one child branch.
func NewArm(v *Value, child *Branch) *Branch {
	return &Branch{kind: KindArm, value: v, child: child}
}

// NewSubtree creates a branch whose value fans out into a nested tree.
func NewSubtree(v *Value, t *Tree) *Branch {
	return &Branch{kind: KindSubtree, value: v, tree: t}
}

// Kind returns the branch variant.
func (b *Branch) Kind() BranchKind {
	return b.kind
}

// Value returns this branch's own value, ignoring any continuation.
func (b *Branch) Value() *Value {
	return b.value
}

// Child returns the child branch for the arm variant, or nil otherwise.
func (b *Branch) Child() *Branch {
	if b.kind != KindArm {
		return nil
	}
	return b.child
}

// Subtree returns the nested tree for the subtree variant, or nil
// otherwise. The depth pass uses this accessor to find trees to descend
// into.
func (b *Branch) Subtree() *Tree {
	if b.kind != KindSubtree {
		return nil
	}
	return b.tree
}

// HasTrailingComma reports whether the source placed a comma after this
// branch.
func (b *Branch) HasTrailingComma() bool {
	return b.trailingComma
}

// SetTrailingComma records the source comma flag. The parser calls this;
// structure is unaffected.
func (b *Branch) SetTrailingComma(v bool) {
	b.trailingComma = v
}

// Equal reports structural equality of two branches. Trailing comma
// flags and source spans are ignored.
func (b *Branch) Equal(other *Branch) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.kind != other.kind || !b.value.Equal(other.value) {
		return false
	}
	switch b.kind {
	case KindArm:
		return b.child.Equal(other.child)
	case KindSubtree:
		return b.tree.Equal(other.tree)
	default:
		return true
	}
}

// CountValues returns the number of values in this branch and its
// continuation.
func (b *Branch) CountValues() int {
	switch b.kind {
	case KindArm:
		return 1 + b.child.CountValues()
	case KindSubtree:
		return 1 + b.tree.CountValues()
	default:
		return 1
	}
}
