// Package foldertree implements an in-memory hierarchical directory
// namespace shared by many concurrent callers. Each node is a folder
// containing named child folders; there are no files.
//
// The hard part is not the tree itself -- it is the fine-grained per-node
// concurrency protocol (room, pathHold, and the least-common-ancestor
// locking strategy in Move) that lets disjoint operations proceed in
// parallel while preventing lost updates, phantom folders, use-after-free
// of a node being removed, and cycles introduced by Move.
package foldertree

import (
	"github.com/agatazaleska/foldertree/pathutil"
	"github.com/agatazaleska/foldertree/telemetry/log"
)

// NodeInfo is read-only introspection about a folder, returned by Info.
type NodeInfo struct {
	ChildCount int
	Depth      int
}

// Tree is a concurrent folder namespace.
type Tree struct {
	root *node
	log  log.Log
}

// New constructs an empty Tree containing only the root folder "/".
func New(opts ...Option) *Tree {
	t := &Tree{
		root: newNode("", nil),
		log:  log.NoLog{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Free releases the whole tree. The caller must guarantee no other
// goroutine is operating on the tree concurrently with or after Free.
func (t *Tree) Free() {
	t.root.free()
}

func depth(path string) int {
	n := 0
	rest := path
	for {
		_, next, ok := pathutil.SplitFirst(rest)
		if !ok {
			return n
		}
		n++
		rest = next
	}
}

// List returns the comma-joined, lexicographically sorted names of path's
// immediate children.
func (t *Tree) List(path string) (string, error) {
	cookie := t.log.Call("List", log.M{"path": path})
	result, err := t.list(path)
	t.log.Return("List", cookie, log.M{"result": result, "err": err})
	return result, err
}

func (t *Tree) list(path string) (string, error) {
	if !pathutil.IsValid(path) {
		return "", t.fail(newError(Invalid, "list", path, ""))
	}

	h := acquirePath(t.root, path, modeRead)
	defer h.release()
	if !h.found {
		return "", t.fail(newError(NotExist, "list", path, ""))
	}

	return pathutil.ListingString(h.terminal().children.Keys()), nil
}

// Create makes a new, empty folder at path. The parent of path must
// already exist.
func (t *Tree) Create(path string) error {
	cookie := t.log.Call("Create", log.M{"path": path})
	err := t.create(path)
	t.log.Return("Create", cookie, log.M{"err": err})
	return err
}

func (t *Tree) create(path string) error {
	if !pathutil.IsValid(path) {
		return t.fail(newError(Invalid, "create", path, ""))
	}
	if path == pathutil.Root {
		return t.fail(newError(Exists, "create", path, ""))
	}

	parentPath, name := pathutil.ParentPath(path)
	h := acquirePath(t.root, parentPath, modeWrite)
	defer h.release()
	if !h.found {
		return t.fail(newError(NotExist, "create", path, ""))
	}

	parent := h.terminal()
	child := newNode(name, parent)
	if !parent.children.InsertIfAbsent(name, child) {
		return t.fail(newError(Exists, "create", path, ""))
	}
	t.log.Logf(log.TopicTree, "created %s", path)
	return nil
}

// Remove deletes the empty folder at path.
func (t *Tree) Remove(path string) error {
	cookie := t.log.Call("Remove", log.M{"path": path})
	err := t.remove(path)
	t.log.Return("Remove", cookie, log.M{"err": err})
	return err
}

func (t *Tree) remove(path string) error {
	if !pathutil.IsValid(path) {
		return t.fail(newError(Invalid, "remove", path, ""))
	}
	if path == pathutil.Root {
		return t.fail(newError(Busy, "remove", path, ""))
	}

	parentPath, name := pathutil.ParentPath(path)
	h := acquirePath(t.root, parentPath, modeWrite)
	defer h.release()
	if !h.found {
		return t.fail(newError(NotExist, "remove", path, ""))
	}

	parent := h.terminal()
	victim, ok := parent.children.Get(name)
	if !ok {
		return t.fail(newError(NotExist, "remove", path, ""))
	}
	if victim.childCount() != 0 {
		return t.fail(newError(NotEmpty, "remove", path, ""))
	}

	parent.children.Remove(name)
	victim.free()
	t.log.Logf(log.TopicTree, "removed %s", path)
	return nil
}

// Move re-parents the folder at source so that it appears at target.
// Moving a folder into one of its own descendants is rejected with
// ErrMoveIntoSelf; moving a path onto itself is a no-op.
func (t *Tree) Move(source, target string) error {
	cookie := t.log.Call("Move", log.M{"source": source, "target": target})
	err := t.move(source, target)
	t.log.Return("Move", cookie, log.M{"err": err})
	return err
}

func (t *Tree) move(source, target string) error {
	if !pathutil.IsValid(source) || !pathutil.IsValid(target) {
		return t.fail(newError(Invalid, "move", source, target))
	}
	if source == pathutil.Root {
		return t.fail(newError(Busy, "move", source, target))
	}
	if target == pathutil.Root {
		return t.fail(newError(Exists, "move", source, target))
	}
	if pathutil.IsPrefix(source, target) && source != target {
		return t.fail(newError(MoveIntoSelf, "move", source, target))
	}

	lca := pathutil.LCA(source, target)
	h := acquirePath(t.root, lca, modeWrite)
	defer h.release()
	if !h.found {
		return t.fail(newError(NotExist, "move", source, target))
	}

	// From here on the whole subtree rooted at the LCA is mutation-
	// locked to this caller, so the remaining lookups are plain,
	// unsynchronized pointer chasing: see resolveFrom's doc comment.
	srcParentPath, srcName := pathutil.ParentPath(source)
	srcParent, ok := resolveFrom(t.root, srcParentPath)
	if !ok {
		return t.fail(newError(NotExist, "move", source, target))
	}
	victim, ok := srcParent.children.Get(srcName)
	if !ok {
		return t.fail(newError(NotExist, "move", source, target))
	}

	tgtParentPath, tgtName := pathutil.ParentPath(target)
	tgtParent, ok := resolveFrom(t.root, tgtParentPath)
	if !ok {
		return t.fail(newError(NotExist, "move", source, target))
	}

	if source == target {
		return nil
	}

	if !tgtParent.children.InsertIfAbsent(tgtName, victim) {
		return t.fail(newError(Exists, "move", source, target))
	}
	victim.parent = tgtParent
	victim.name = tgtName
	srcParent.children.Remove(srcName)
	t.log.Logf(log.TopicTree, "moved %s -> %s", source, target)
	return nil
}

// Info returns read-only metadata about the folder at path.
func (t *Tree) Info(path string) (NodeInfo, error) {
	if !pathutil.IsValid(path) {
		return NodeInfo{}, t.fail(newError(Invalid, "info", path, ""))
	}

	h := acquirePath(t.root, path, modeRead)
	defer h.release()
	if !h.found {
		return NodeInfo{}, t.fail(newError(NotExist, "info", path, ""))
	}

	n := h.terminal()
	return NodeInfo{ChildCount: n.childCount(), Depth: depth(path)}, nil
}

func (t *Tree) fail(err *Error) error {
	t.log.Logf(log.TopicError, "%s", err)
	return err
}
