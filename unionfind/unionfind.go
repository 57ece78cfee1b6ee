/*
Package unionfind implements a weighted quick-union structure over strings,
with path compression and a reverse mapping from each class representative
to the members of its class.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package unionfind

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// UnionFind partitions a fixed set of elements into disjoint classes.
type UnionFind struct {
	parent    map[string]string
	size      map[string]int
	followers *treemap.Map // representative → []string, ordered by representative
}

// New creates a structure with every element in a class of its own.
func New(elements []string) *UnionFind {
	uf := &UnionFind{
		parent:    make(map[string]string, len(elements)),
		size:      make(map[string]int, len(elements)),
		followers: treemap.NewWith(utils.StringComparator),
	}
	for _, e := range elements {
		if _, ok := uf.parent[e]; ok {
			continue
		}
		uf.parent[e] = e
		uf.size[e] = 1
		uf.followers.Put(e, []string{e})
	}
	return uf
}

// Find returns the representative of e's class. It panics for unknown
// elements.
func (uf *UnionFind) Find(e string) string {
	root, ok := uf.parent[e]
	if !ok {
		panic(fmt.Sprintf("unionfind: unknown element %q", e))
	}
	for root != uf.parent[root] {
		root = uf.parent[root]
	}
	for e != root { // compress path
		next := uf.parent[e]
		uf.parent[e] = root
		e = next
	}
	return root
}

// Connect merges the classes of p and q. The representative of the larger
// class survives.
func (uf *UnionFind) Connect(p, q string) {
	i, j := uf.Find(p), uf.Find(q)
	if i == j {
		return
	}
	if uf.size[i] < uf.size[j] {
		i, j = j, i
	}
	uf.parent[j] = i
	uf.size[i] += uf.size[j]
	fi, _ := uf.followers.Get(i)
	fj, _ := uf.followers.Get(j)
	uf.followers.Put(i, append(fi.([]string), fj.([]string)...))
	uf.followers.Remove(j)
}

// IsConnected is true if p and q are in the same class.
func (uf *UnionFind) IsConnected(p, q string) bool {
	return uf.Find(p) == uf.Find(q)
}

// Classes returns the current classes, ordered by representative. Members
// are listed in the order they joined the class.
func (uf *UnionFind) Classes() [][]string {
	classes := make([][]string, 0, uf.followers.Size())
	it := uf.followers.Iterator()
	for it.Next() {
		members := it.Value().([]string)
		classes = append(classes, append([]string(nil), members...))
	}
	return classes
}

// Members returns the class of e.
func (uf *UnionFind) Members(e string) []string {
	f, _ := uf.followers.Get(uf.Find(e))
	return append([]string(nil), f.([]string)...)
}
