package tree

import "strings"

// String renders the tree in source form: one branch per line, commas
// after every branch, nested trees in indented brace groups. The
// rendering parses back to a structurally equal tree.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, indent int) {
	for _, br := range t.branches {
		b.WriteString(strings.Repeat("    ", indent))
		br.write(b, indent)
		b.WriteString(",\n")
	}
}

func (br *Branch) write(b *strings.Builder, indent int) {
	b.WriteString(br.value.Expr)
	switch br.kind {
	case KindArm:
		b.WriteString(" => ")
		br.child.write(b, indent)
	case KindSubtree:
		b.WriteString(" => {\n")
		br.tree.write(b, indent+1)
		b.WriteString(strings.Repeat("    ", indent))
		b.WriteString("}")
	}
}

// String renders the branch in source form without a trailing comma.
func (br *Branch) String() string {
	var b strings.Builder
	br.write(&b, 0)
	return b.String()
}
