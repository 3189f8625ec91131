package lang

// expand produces the fully-substituted token sequence for a block.
//
// The block's duplication factor is the maximum value-count among variables
// referenced directly by its own nodes; references inside child blocks do
// not count. Each child block is expanded once, independently, and the same
// expanded copies are spliced into every one of the parent's iterations,
// inside a single pair of delimiters. Variables shorter than the factor
// reuse their final value (clamp-last).
func expand(table *Table, block *Block) ([]Token, error) {
	// Children resolve their own factor exactly once, regardless of how
	// many copies the parent produces.
	children := make(map[int][]Token)

	for i, node := range block.Nodes {
		if node.Type != NodeBlock {
			continue
		}

		sub, err := expand(table, node.Block)
		if err != nil {
			return nil, err
		}

		children[i] = sub
	}

	factor, err := blockFactor(table, block)
	if err != nil {
		return nil, err
	}

	var out []Token

	for i := range factor {
		for j, node := range block.Nodes {
			switch node.Type {
			case NodeToken:
				out = append(out, node.Token)

			case NodeRef:
				// Parsing already resolved the name; re-check anyway so a
				// stale block never expands against the wrong table.
				v, ok := table.Lookup(node.Ref.Name)
				if !ok {
					return nil, undeclared(node.Ref.Name, node.Ref.Pos, table.Names())
				}

				out = append(out, substitute(v.Value(i), node.Ref)...)

			case NodeBlock:
				child := node.Block
				out = append(out, child.Open)
				out = append(out, children[j]...)
				out = append(out, child.Close)
			}
		}
	}

	return out, nil
}

// blockFactor derives the duplication factor for a block from the variables
// its own nodes reference: max(1, max value-count).
func blockFactor(table *Table, block *Block) (int, error) {
	factor := 1

	for _, node := range block.Nodes {
		if node.Type != NodeRef {
			continue
		}

		v, ok := table.Lookup(node.Ref.Name)
		if !ok {
			return 0, undeclared(node.Ref.Name, node.Ref.Pos, table.Names())
		}

		if v.Len() > factor {
			factor = v.Len()
		}
	}

	return factor, nil
}

// substitute copies a value's tokens in place of a reference. The first
// token inherits the reference's joint flag so ~*name glues its expansion
// to the preceding output token. An empty (NONE) value contributes nothing.
func substitute(val Value, ref *Ref) []Token {
	if val.IsEmpty() {
		return nil
	}

	out := make([]Token, len(val))
	copy(out, val)
	out[0].Joint = out[0].Joint || ref.Joint

	return out
}
