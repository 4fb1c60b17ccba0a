package foldertree

import "github.com/agatazaleska/foldertree/pathutil"

// mode is the kind of hold taken on the terminal node of a path lock.
type mode int

const (
	modeRead mode = iota
	modeWrite
)

// held is one entry in a path lock's held chain: a node together with the
// mode it was locked in.
type held struct {
	n    *node
	mode mode
}

// pathHold is a handle returned by acquirePath: the chain of nodes locked
// on the way to the terminal node, and whether descent reached the
// terminal node (found) or stopped early because an intermediate or
// terminal component was missing.
type pathHold struct {
	chain []held
	found bool
}

// terminal returns the deepest node in the chain: the fully resolved
// target when found is true, or the deepest existing ancestor otherwise.
func (h *pathHold) terminal() *node {
	if len(h.chain) == 0 {
		return nil
	}
	return h.chain[len(h.chain)-1].n
}

// acquirePath walks path from root, taking a reader hold on every
// intermediate node and either a reader or writer hold (per terminalMode)
// on the terminal node. The empty path "/" resolves to root with no
// ancestor reads, only the terminal hold.
//
// If a component along the way does not exist, acquirePath stops and
// returns found=false; the held chain still includes every node locked so
// far (the deepest existing ancestor and all its strict ancestors, all
// reader-locked), so the caller can release them uniformly.
func acquirePath(root *node, path string, terminalMode mode) *pathHold {
	h := &pathHold{}
	cur := root
	rest := path
	for {
		comp, next, ok := pathutil.SplitFirst(rest)
		if !ok {
			break
		}
		cur.room.enterRead()
		h.chain = append(h.chain, held{n: cur, mode: modeRead})

		child, present := cur.children.Get(comp)
		if !present {
			return h
		}
		cur = child
		rest = next
	}

	if terminalMode == modeWrite {
		cur.room.enterWrite()
	} else {
		cur.room.enterRead()
	}
	h.chain = append(h.chain, held{n: cur, mode: terminalMode})
	h.found = true
	return h
}

// release walks the held chain in reverse, releasing the terminal entry
// with its recorded mode and every other entry as a reader.
func (h *pathHold) release() {
	for i := len(h.chain) - 1; i >= 0; i-- {
		e := h.chain[i]
		if e.mode == modeWrite {
			e.n.room.leaveWrite()
		} else {
			e.n.room.leaveRead()
		}
	}
}

// resolveFrom walks path from base using unsynchronized map lookups,
// i.e. it takes no room holds of its own.
//
// It is only safe to call this while the caller already holds a path
// lock with a writer hold on some node A that is an ancestor of (or equal
// to) the resolved node, and reader holds on every node from base down to
// A: the reader holds keep the nodes above A in place, and the writer
// hold keeps every node between A and the resolved node stable, because
// no other operation can descend past A while it is write-locked.
func resolveFrom(base *node, path string) (*node, bool) {
	cur := base
	rest := path
	for {
		comp, next, ok := pathutil.SplitFirst(rest)
		if !ok {
			return cur, true
		}
		child, present := cur.children.Get(comp)
		if !present {
			return nil, false
		}
		cur = child
		rest = next
	}
}
