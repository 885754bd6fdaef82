package growth

// Census summarizes the shape of a branch hierarchy.
type Census struct {
	Branches    int
	Leaves      int
	MaxDepth    int
	TotalLength float64
}

// Survey walks the subtree rooted at b.
func (b *Branch) Survey() Census {
	var c Census
	b.Visit(func(br *Branch) bool {
		c.Branches++
		c.TotalLength += br.Length()
		c.MaxDepth = max(c.MaxDepth, br.Depth)
		if len(br.Children) == 0 {
			c.Leaves++
		}
		return true
	})
	return c
}

// Visit calls fn for b and every descendant, parents before children.
// Returning false from fn skips that branch's subtree.
func (b *Branch) Visit(fn func(*Branch) bool) {
	if !fn(b) {
		return
	}
	for _, child := range b.Children {
		child.Visit(fn)
	}
}
