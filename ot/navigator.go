package ot

// Navigator is a generic, format-agnostic accessor over a table's raw
// fields. It complements the structured per-table accessors (HeadTable,
// HHeaTable, etc.) for ad-hoc inspection — e.g. a CLI dump tool listing
// every 16-bit field of an unrecognized table — without requiring package
// ot to carry a decoder for every table variant in existence.
type Navigator interface {
	Get(i int) NavLocation // the i-th 16-bit field, or a zero-size location if out of range
	All() []NavLocation    // every 16-bit field, in order
	Len() int              // number of 16-bit fields
}

// NavigatorFactory builds a Navigator over data, treating it as a flat
// sequence of big-endian 16-bit words. tableTag is carried for diagnostic
// messages only. base is stored alongside data, but no Navigator method
// reads it: every index is relative to the start of data.
func NavigatorFactory(tableTag string, data NavLocation, base binarySegm) Navigator {
	var d binarySegm
	if data != nil {
		d = binarySegm(data.Bytes())
	}
	return &rawNavigator{tag: tableTag, data: d, base: base}
}

type rawNavigator struct {
	tag  string
	data binarySegm
	base binarySegm
}

func (n *rawNavigator) Len() int {
	return len(n.data) / 2
}

func (n *rawNavigator) Get(i int) NavLocation {
	if i < 0 || (i+1)*2 > len(n.data) {
		return binarySegm(nil)
	}
	return n.data[i*2 : i*2+2]
}

func (n *rawNavigator) All() []NavLocation {
	count := n.Len()
	locs := make([]NavLocation, count)
	for i := 0; i < count; i++ {
		locs[i] = n.data[i*2 : i*2+2]
	}
	return locs
}
