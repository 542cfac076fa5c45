package sentinel

import "strings"

// AddrList is an ordered, duplicate-free sequence of addresses. The first
// entry is the preferred sentinel to try. All operations are value-level:
// they return fresh lists and never mutate their input.
type AddrList []Addr

// Contains reports whether the list holds an address equal to a.
func (l AddrList) Contains(a Addr) bool {
	return l.indexOf(a) >= 0
}

func (l AddrList) indexOf(a Addr) int {
	for i, x := range l {
		if x.Equal(a) {
			return i
		}
	}
	return -1
}

func (l AddrList) clone() AddrList {
	out := make(AddrList, len(l))
	copy(out, l)
	return out
}

// AddBack appends each address not already present, preserving input
// order.
func AddBack(l AddrList, addrs ...Addr) AddrList {
	out := l.clone()
	for _, a := range addrs {
		if !out.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// AddFront ensures a is the first element. If it already is, the list is
// returned unchanged; otherwise any prior occurrence is removed and a is
// prepended. Metadata from a prior occurrence is kept when the new entry
// carries none.
func AddFront(l AddrList, a Addr) AddrList {
	if len(l) > 0 && l[0].Equal(a) {
		return l
	}
	if i := l.indexOf(a); i >= 0 && a.Name == "" {
		a.Name = l[i].Name
	}
	out := make(AddrList, 0, len(l)+1)
	out = append(out, a)
	for _, x := range l {
		if !x.Equal(a) {
			out = append(out, x)
		}
	}
	return out
}

// Remove drops all occurrences of a.
func Remove(l AddrList, a Addr) AddrList {
	out := make(AddrList, 0, len(l))
	for _, x := range l {
		if !x.Equal(a) {
			out = append(out, x)
		}
	}
	return out
}

func dedup(l AddrList) AddrList {
	out := make(AddrList, 0, len(l))
	for _, a := range l {
		if !out.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

func (l AddrList) equal(other AddrList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// AddrMap maps a normalized master name to its sentinel address list.
type AddrMap map[string]AddrList

// normalizeMasterName canonicalizes a master name. Keyword-style inputs
// with a leading colon reduce to their plain name form.
func normalizeMasterName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), ":")
}

// cleanAddrMap normalizes every key and deduplicates every list,
// preserving metadata from the first occurrence of each address.
func cleanAddrMap(m AddrMap) AddrMap {
	out := make(AddrMap, len(m))
	for name, list := range m {
		key := normalizeMasterName(name)
		out[key] = AddBack(out[key], dedup(list)...)
	}
	return out
}

func (m AddrMap) clone() AddrMap {
	out := make(AddrMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m AddrMap) equal(other AddrMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if !v.equal(other[k]) {
			return false
		}
	}
	return true
}
