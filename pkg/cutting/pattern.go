package cutting

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// Pattern is an immutable (stock length, item multiset, derived accounting,
// stable id) value, internal to the pattern-based solvers.
type Pattern struct {
	StockLength float64
	// Items maps a demand-map key (lengthKey) to count, mirroring the
	// demand map's own keying so patterns and demand can be compared
	// without re-deriving lengths arithmetically.
	Items       map[uint64]int
	Used        float64
	Waste       float64
	Utilization float64
	ID          string
}

// newPattern builds a Pattern from a stock length and an item-count map,
// computing used/waste/utilization/id. used = sum(length*count) +
// (sum(count)-1)*kerf; waste = usable - used.
func newPattern(stockLength float64, items map[uint64]int, kerf, startSafety, endSafety float64) Pattern {
	total := 0
	sumLengths := 0.0
	for k, c := range items {
		if c <= 0 {
			continue
		}
		sumLengths += lengthFromKey(k) * float64(c)
		total += c
	}
	used := usedLength(total, sumLengths, kerf, startSafety, endSafety)
	usable := stockLength - startSafety - endSafety
	waste := usable - (used - startSafety - endSafety)
	util := 0.0
	if usable > 0 {
		util = (used - startSafety - endSafety) / usable
	}

	return Pattern{
		StockLength: stockLength,
		Items:       items,
		Used:        used - startSafety - endSafety,
		Waste:       waste,
		Utilization: util,
		ID:          fingerprintPattern(stockLength, items),
	}
}

// TotalCount returns the total number of pieces placed by the pattern.
func (p Pattern) TotalCount() int {
	n := 0
	for _, c := range p.Items {
		n += c
	}
	return n
}

// fingerprintPattern builds a stable fingerprint of (stockLength, sorted
// items) — a structural hash map key rather than naive string
// concatenation, following katalvlaran/lvlath/builder's canonical-id
// helper approach (id_fn.go derives stable ids from a canonicalized input
// shape before hashing).
func fingerprintPattern(stockLength float64, items map[uint64]int) string {
	keys := make([]uint64, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], float64Bits(stockLength))
	h.Write(buf[:])
	for _, k := range keys {
		binary.BigEndian.PutUint64(buf[:], k)
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(items[k]))
		h.Write(buf[:])
	}
	sum := h.Sum(nil)
	return hexEncode(sum[:8])
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

// dominates reports whether p dominates q: same stock length, p covers at
// least as much of every length as q, with strictly less waste.
func (p Pattern) dominates(q Pattern) bool {
	if p.StockLength != q.StockLength {
		return false
	}
	for k, qc := range q.Items {
		if p.Items[k] < qc {
			return false
		}
	}
	return p.Waste < q.Waste
}

// canonicalDemandKey builds a deterministic string key for a demand map,
// used by the DFS memoization table (sorted (length,count) pairs).
func canonicalDemandKey(d demandMap) string {
	keys := make([]uint64, 0, len(d))
	for k, c := range d {
		if c > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	h := sha256.New()
	var buf [8]byte
	for _, k := range keys {
		binary.BigEndian.PutUint64(buf[:], k)
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(d[k]))
		h.Write(buf[:])
	}
	sum := h.Sum(nil)
	return hexEncode(sum[:8])
}
