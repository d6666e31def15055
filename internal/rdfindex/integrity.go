package rdfindex

import "fmt"

// CheckIntegrity checks the triple index, then walks every S, O and P chain
// from its scalar-index head and verifies completeness and the absence of
// cycles. SP and OP chains are covered only as parts of the S and O walks;
// they are not walked separately from their pair-index heads. It is a recommended debug-only property test
// (spec.md §9 mentions the source repo's own `check_integrity`), not a
// runtime check — it is O(table size) and would violate Add's amortised
// O(1) budget if run on every mutation.
//
// Grounded on the invariant commentary in
// original_source/dbsi_project/dbsi_rdf_index_helper.h and the
// DBSI_CHECK_INVARIANT/DBSI_CHECK_POSTCOND assertion sites in
// dbsi_rdf_index.cpp.
func (ix *Index) CheckIntegrity() error {
	if err := ix.checkTripleIndex(); err != nil {
		return err
	}
	if err := ix.checkSChains(); err != nil {
		return err
	}
	if err := ix.checkOChains(); err != nil {
		return err
	}
	return ix.checkPChains()
}

func (ix *Index) checkTripleIndex() error {
	if len(ix.tripleIndex) != len(ix.table) {
		return fmt.Errorf("rdfindex: triple index has %d entries, table has %d rows", len(ix.tripleIndex), len(ix.table))
	}
	for off, row := range ix.table {
		got, ok := ix.tripleIndex[row.t]
		if !ok || int(got) != off {
			return fmt.Errorf("rdfindex: triple index does not map row %v back to offset %d", row.t, off)
		}
	}
	return nil
}

// checkSChains walks every subject's group-head chain (following nSP via
// the SP pair index) and verifies it visits, without repetition, exactly
// S[s].count rows, every one of which has subject s.
func (ix *Index) checkSChains() error {
	for s, entry := range ix.sIndex {
		visited := make(map[TableOffset]bool)
		off := entry.head
		count := 0
		for off != Sentinel {
			if visited[off] {
				return fmt.Errorf("rdfindex: cycle detected in S-chain for subject %v", s)
			}
			visited[off] = true
			row := ix.table[off]
			if row.t.Subject != s {
				return fmt.Errorf("rdfindex: row at offset %d in S-chain for subject %v has subject %v", off, s, row.t.Subject)
			}
			count++
			off = followLink(row.nSP, ix.spIndex)
		}
		if count != entry.count {
			return fmt.Errorf("rdfindex: S-chain for subject %v visited %d rows, index says %d", s, count, entry.count)
		}
	}
	return nil
}

// checkOChains is checkSChains' mirror image over the O/OP indices.
func (ix *Index) checkOChains() error {
	for o, entry := range ix.oIndex {
		visited := make(map[TableOffset]bool)
		off := entry.head
		count := 0
		for off != Sentinel {
			if visited[off] {
				return fmt.Errorf("rdfindex: cycle detected in O-chain for object %v", o)
			}
			visited[off] = true
			row := ix.table[off]
			if row.t.Object != o {
				return fmt.Errorf("rdfindex: row at offset %d in O-chain for object %v has object %v", off, o, row.t.Object)
			}
			count++
			off = followLink(row.nOP, ix.opIndex)
		}
		if count != entry.count {
			return fmt.Errorf("rdfindex: O-chain for object %v visited %d rows, index says %d", o, count, entry.count)
		}
	}
	return nil
}

// checkPChains walks every predicate's n_p chain — a plain insertion-order
// linked list, no pair-index crossing involved — and verifies it visits
// exactly P[p].count rows, every one of which has predicate p.
func (ix *Index) checkPChains() error {
	for p, entry := range ix.pIndex {
		visited := make(map[TableOffset]bool)
		off := entry.head
		count := 0
		for off != Sentinel {
			if visited[off] {
				return fmt.Errorf("rdfindex: cycle detected in P-chain for predicate %v", p)
			}
			visited[off] = true
			row := ix.table[off]
			if row.t.Predicate != p {
				return fmt.Errorf("rdfindex: row at offset %d in P-chain for predicate %v has predicate %v", off, p, row.t.Predicate)
			}
			count++
			off = row.nP
		}
		if count != entry.count {
			return fmt.Errorf("rdfindex: P-chain for predicate %v visited %d rows, index says %d", p, count, entry.count)
		}
	}
	return nil
}
