package reconcile

// Key is the composite business key of an invoice-level join.
type Key struct {
	DocumentNo    string
	SupplierTaxID string
}

func recordKey(r *Record) Key {
	return Key{DocumentNo: r.DocumentNo, SupplierTaxID: r.SupplierTaxID}
}

// joinIndices is a full outer join over positions. Output order: every left
// item in input order, each followed by its right matches in right order
// (one row per pair on duplicate keys), then the unmatched right items in
// input order. A -1 marks the absent side.
func joinIndices[L, R any, K comparable](left []L, right []R, lkey func(*L) K, rkey func(*R) K) [][2]int {
	byKey := make(map[K][]int, len(right))
	for j := range right {
		k := rkey(&right[j])
		byKey[k] = append(byKey[k], j)
	}

	out := make([][2]int, 0, len(left)+len(right))
	seen := make([]bool, len(right))
	for i := range left {
		matches := byKey[lkey(&left[i])]
		if len(matches) == 0 {
			out = append(out, [2]int{i, -1})
			continue
		}
		for _, j := range matches {
			out = append(out, [2]int{i, j})
			seen[j] = true
		}
	}
	for j := range right {
		if !seen[j] {
			out = append(out, [2]int{-1, j})
		}
	}
	return out
}

func provenanceOf(i, j int) Provenance {
	switch {
	case i >= 0 && j >= 0:
		return Both
	case i >= 0:
		return LeftOnly
	default:
		return RightOnly
	}
}

// OuterJoin pairs ledger and statement records on (DocumentNo, SupplierTaxID)
// by exact string equality. Pairs point into the input slices.
func OuterJoin(left, right []Record) []MatchedPair {
	idx := joinIndices(left, right, recordKey, recordKey)
	pairs := make([]MatchedPair, 0, len(idx))
	for _, ij := range idx {
		p := MatchedPair{Provenance: provenanceOf(ij[0], ij[1])}
		if ij[0] >= 0 {
			p.Left = &left[ij[0]]
		}
		if ij[1] >= 0 {
			p.Right = &right[ij[1]]
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// KeepRightNotes keeps the pairs whose statement side is a note of the given kind.
func KeepRightNotes(pairs []MatchedPair, kind string) []MatchedPair {
	out := make([]MatchedPair, 0, len(pairs))
	for _, p := range pairs {
		if p.Right != nil && containsFold(p.Right.NoteKind, kind) {
			out = append(out, p)
		}
	}
	return out
}

// JoinGroups outer-joins aggregated groups on GSTIN alone.
func JoinGroups(left, right []AggregatedGroup) []GroupPair {
	key := func(g *AggregatedGroup) string { return g.SupplierTaxID }
	idx := joinIndices(left, right, key, key)
	pairs := make([]GroupPair, 0, len(idx))
	for _, ij := range idx {
		p := GroupPair{Provenance: provenanceOf(ij[0], ij[1])}
		if ij[0] >= 0 {
			p.Left = &left[ij[0]]
		}
		if ij[1] >= 0 {
			p.Right = &right[ij[1]]
		}
		pairs = append(pairs, p)
	}
	return pairs
}
