package rdfindex

import "github.com/samuelbarrett1234/dbsi-project/internal/coded"

// Index is the append-only triple table plus its scalar (S/P/O), pair
// (SP/OP) and triple (SPO) indices. It is single-threaded, owned
// exclusively by the driver, and borrowed read-only by every evaluator and
// join iterator (spec.md §5); nothing here is safe for concurrent mutation.
type Index struct {
	table []tripleRow

	sIndex map[coded.CodedResource]*scalarEntry
	pIndex map[coded.CodedResource]*scalarEntry
	oIndex map[coded.CodedResource]*scalarEntry

	spIndex map[pairKey]TableOffset
	opIndex map[pairKey]TableOffset

	tripleIndex map[coded.CodedTriple]TableOffset
}

func New() *Index {
	return &Index{
		sIndex:      make(map[coded.CodedResource]*scalarEntry),
		pIndex:      make(map[coded.CodedResource]*scalarEntry),
		oIndex:      make(map[coded.CodedResource]*scalarEntry),
		spIndex:     make(map[pairKey]TableOffset),
		opIndex:     make(map[pairKey]TableOffset),
		tripleIndex: make(map[coded.CodedTriple]TableOffset),
	}
}

// Len returns the number of distinct triples stored.
func (ix *Index) Len() int {
	return len(ix.table)
}

func (ix *Index) getOrCreateScalar(idx map[coded.CodedResource]*scalarEntry, r coded.CodedResource) *scalarEntry {
	e, ok := idx[r]
	if !ok {
		e = &scalarEntry{head: Sentinel, count: 0}
		idx[r] = e
	}
	return e
}

// Add appends t if it is not already present, preserving every invariant
// of spec.md §3. Amortised O(1): a handful of hash lookups plus a
// constant-time append. Duplicate inserts are no-ops.
//
// Grounded on dbsi_rdf_index.cpp's RDFIndex::add.
func (ix *Index) Add(t coded.CodedTriple) {
	if _, exists := ix.tripleIndex[t]; exists {
		return
	}

	s, p, o := t.Subject, t.Predicate, t.Object

	sEntry := ix.getOrCreateScalar(ix.sIndex, s)
	pEntry := ix.getOrCreateScalar(ix.pIndex, p)
	oEntry := ix.getOrCreateScalar(ix.oIndex, o)

	oldSHead, oldOHead := sEntry.head, oEntry.head

	newOff := TableOffset(len(ix.table))

	spKey := pairKey{A: s, B: p}
	opKey := pairKey{A: o, B: p}

	_, spExisted := ix.spIndex[spKey]
	_, opExisted := ix.opIndex[opKey]

	nSP := ix.computeLink(ix.spIndex, spKey, spExisted, s, oldSHead)
	nOP := ix.computeLink(ix.opIndex, opKey, opExisted, o, oldOHead)

	row := tripleRow{
		t:   t,
		nSP: nSP,
		nOP: nOP,
		nP:  pEntry.head,
	}
	ix.table = append(ix.table, row)

	ix.spIndex[spKey] = newOff
	ix.opIndex[opKey] = newOff
	ix.tripleIndex[t] = newOff

	if ix.shouldMoveGroupHead(spExisted, oldSHead, p) {
		sEntry.head = newOff
	}
	sEntry.count++

	if ix.shouldMoveGroupHead(opExisted, oldOHead, p) {
		oEntry.head = newOff
	}
	oEntry.count++

	pEntry.head = newOff
	pEntry.count++
}

// computeLink computes the n_sp (or, symmetrically, n_op) variant pointer
// for a newly-appended row whose (first, pred) pair is `key`, where
// `first` is the subject (resp. object) and `firstHead` is that subject's
// (resp. object's) scalar-index head *before* this insert.
func (ix *Index) computeLink(pairIndex map[pairKey]TableOffset, key pairKey, keyExisted bool, first coded.CodedResource, firstHead TableOffset) linkTarget {
	if keyExisted {
		// append to the head of the existing (first, pred) chain.
		return offsetTarget(pairIndex[key])
	}
	if firstHead == Sentinel {
		// first row ever with this subject/object.
		return sentinelTarget
	}
	// cross to the (first, p') chain belonging to the current group head.
	otherPred := ix.table[firstHead].t.Predicate
	return pairTarget(first, otherPred)
}

// shouldMoveGroupHead implements spec.md §3's subtle per-group head rule:
// move the S (or O) scalar index's head to the new row iff either the
// (s,p) (resp. (o,p)) chain did not exist before this insert, or the row
// currently at the old head shares this insert's predicate (i.e. the head
// already belongs to the very group being extended).
func (ix *Index) shouldMoveGroupHead(pairExisted bool, oldHead TableOffset, p coded.CodedResource) bool {
	if !pairExisted {
		return true
	}
	if oldHead == Sentinel {
		return true
	}
	return ix.table[oldHead].t.Predicate == p
}

// FullScan returns an iterator over every row, exactly once, in insertion
// order.
func (ix *Index) FullScan() *FullScanIterator {
	return &FullScanIterator{index: ix}
}

// FullScanIterator walks the table linearly from offset 0 to len.
type FullScanIterator struct {
	index   *Index
	current TableOffset
}

func (it *FullScanIterator) Start() error {
	it.current = 0
	return nil
}

func (it *FullScanIterator) Valid() bool {
	return int(it.current) < len(it.index.table)
}

func (it *FullScanIterator) Current() coded.CodedTriple {
	return it.index.table[it.current].t
}

func (it *FullScanIterator) Next() error {
	it.current++
	return nil
}
