// Package rdfindex implements the append-only triple table and its six
// indices (spec.md §3–§4.3), following the Motik et al. parallel-
// materialisation index layout. Grounded directly on
// original_source/dbsi_project/dbsi_rdf_index_helper.h (the TripleRow /
// variant-link-pointer design) and dbsi_rdf_index.cpp (the insert and
// evaluate algorithms).
package rdfindex

import (
	"math"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
)

// TableOffset indexes into the table. Sentinel marks "end of chain" — the
// same role `TABLE_END = max(size_t)` plays in dbsi_rdf_index_helper.h.
type TableOffset uint32

const Sentinel TableOffset = math.MaxUint32

// linkKind tags a linkTarget's two variants: a direct table offset, or a
// pair-index key that must be resolved against the live SP/OP index at
// follow-time. This is the two-variant sum spec.md §9 calls out as the
// subtle part of the design: resolving through the pair key, rather than
// storing a copy of the resolved offset, is what lets a chain's head move
// without rewriting every row that points into the chain.
type linkKind uint8

const (
	linkOffset linkKind = iota
	linkPairKey
)

type linkTarget struct {
	kind linkKind
	off  TableOffset
	a, b coded.CodedResource // pair key (s,p') or (o,p'); meaningless when kind == linkOffset
}

func offsetTarget(off TableOffset) linkTarget {
	return linkTarget{kind: linkOffset, off: off}
}

var sentinelTarget = offsetTarget(Sentinel)

func pairTarget(a, b coded.CodedResource) linkTarget {
	return linkTarget{kind: linkPairKey, a: a, b: b}
}

// tripleRow is one row of the table: a coded triple plus its three link
// pointers.
type tripleRow struct {
	t   coded.CodedTriple
	nSP linkTarget // same (s,p) group, or crosses to a different (s,p') group
	nOP linkTarget // same (o,p) group, or crosses to a different (o,p') group
	nP  TableOffset
}

// scalarEntry is a scalar (S, P or O) index entry: a group head offset plus
// a row count.
type scalarEntry struct {
	head  TableOffset
	count int
}

// pairKey is the map key for the SP and OP pair indices.
type pairKey struct {
	A, B coded.CodedResource
}
