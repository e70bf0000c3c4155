package mdast

// WalkFunc is called for each paragraph with its nesting depth (0 for
// top-level blocks). Return a non-nil error to stop the walk.
type WalkFunc func(p *Paragraph, depth int) error

// Walk performs a pre-order traversal of blocks and their children.
func Walk(blocks []*Paragraph, walkFunc WalkFunc) error {
	return walk(blocks, 0, walkFunc)
}

func walk(blocks []*Paragraph, depth int, walkFunc WalkFunc) error {
	for _, p := range blocks {
		if p == nil {
			continue
		}
		if err := walkFunc(p, depth); err != nil {
			return err
		}
		if err := walk(p.Children, depth+1, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every paragraph matching predicate, in document order.
func FindAll(blocks []*Paragraph, predicate func(p *Paragraph) bool) []*Paragraph {
	var result []*Paragraph

	//nolint:errcheck,revive // the callback never fails
	Walk(blocks, func(p *Paragraph, _ int) error {
		if predicate(p) {
			result = append(result, p)
		}
		return nil
	})

	return result
}

// FindByKind returns every paragraph of the given kind.
func FindByKind(blocks []*Paragraph, kind Kind) []*Paragraph {
	return FindAll(blocks, func(p *Paragraph) bool {
		return p.Kind == kind
	})
}
