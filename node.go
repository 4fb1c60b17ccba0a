package foldertree

import "github.com/agatazaleska/foldertree/container"

// node is a folder: it owns a room for reader/writer coordination, a map
// of child-name to child node, and a non-owning back-reference to its
// parent (ownership runs parent -> child through children; parent is set
// by newNode and updated by move, and release walks its held chain
// rather than parent pointers).
type node struct {
	name     string
	parent   *node
	children *container.Map[*node]
	room     *room
}

// newNode constructs a detached, empty node. It is attached to the tree
// by whichever caller (create or move) inserts it into a parent's
// children map under that parent's writer hold.
func newNode(name string, parent *node) *node {
	return &node{
		name:     name,
		parent:   parent,
		children: container.New[*node](),
		room:     newRoom(),
	}
}

// free recursively frees the subtree rooted at n. It is called either on
// a node that has just been detached from its parent's children map
// under that parent's writer hold, so by invariant 3 no concurrent
// operation can be holding a reference into this subtree, or by Tree.Free
// on the root, whose caller guarantees no concurrent operations.
func (n *node) free() {
	n.children.Range(func(_ string, child *node) bool {
		child.free()
		return true
	})
}

// childCount reports how many children n currently has. Must only be
// called while holding at least a reader lock on n.
func (n *node) childCount() int {
	return n.children.Size()
}
