// Package dictionary implements the bijection between rdf.Resource values
// and the dense integer codes ("coded.CodedResource") the rest of the store
// operates on (spec.md §4.1).
//
// Grounded on internal/encoding/encoder.go's use of github.com/zeebo/xxh3 to
// hash term values before storing them: Dictionary.Encode hashes a
// resource's canonical bytes with xxh3's 128-bit variant and uses that as a
// bucket key, confirming true equality against a short collision chain —
// the same "hash first, confirm equality second" discipline the encoder
// uses for its id2str table. The actual insert-or-lookup sequencing
// (look the resource up first; only if it is new, take the next unused
// integer as its code and commit it) follows dbsi_dictionary.cpp's
// Dictionary::encode.
package dictionary

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

type bucketEntry struct {
	resource rdf.Resource
	code     coded.CodedResource
}

// Dictionary is a bijection between rdf.Resource and coded.CodedResource.
// Codes are dense integers assigned in order of first insertion; once
// assigned, a code is never reassigned and decode(encode(r)) == r always
// holds.
type Dictionary struct {
	buckets map[[16]byte][]bucketEntry
	decoder []rdf.Resource
}

func New() *Dictionary {
	return &Dictionary{buckets: make(map[[16]byte][]bucketEntry)}
}

func hashKey(r rdf.Resource) [16]byte {
	buf := make([]byte, 0, len(r.Value)+1)
	buf = append(buf, byte(r.Kind))
	buf = append(buf, r.Value...)
	h := xxh3.Hash128(buf)
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], h.Hi)
	binary.BigEndian.PutUint64(out[8:16], h.Lo)
	return out
}

// Encode returns the existing code for r, assigning and storing a new one
// — the next unused integer — if r has never been seen before.
func (d *Dictionary) Encode(r rdf.Resource) coded.CodedResource {
	key := hashKey(r)
	bucket := d.buckets[key]
	for _, e := range bucket {
		if e.resource == r {
			return e.code
		}
	}

	// potential_new_code: what r's code would be, were it new.
	newCode := coded.CodedResource(len(d.decoder))
	d.decoder = append(d.decoder, r)
	d.buckets[key] = append(bucket, bucketEntry{resource: r, code: newCode})
	return newCode
}

// Decode returns the resource previously registered under code. Calling
// Decode with a code that was never returned by Encode is a precondition
// violation, not a runtime error — it panics.
func (d *Dictionary) Decode(code coded.CodedResource) rdf.Resource {
	if code < 0 || int(code) >= len(d.decoder) {
		panic(fmt.Sprintf("dictionary: decode of unassigned code %d", code))
	}
	return d.decoder[code]
}

// Len returns the number of distinct resources registered so far.
func (d *Dictionary) Len() int {
	return len(d.decoder)
}
