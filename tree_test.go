package foldertree_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foldertree "github.com/agatazaleska/foldertree"
)

// assertErrKind fails the test unless err is a *foldertree.Error of the
// given kind.
func assertErrKind(t *testing.T, kind foldertree.Kind, err error) {
	t.Helper()
	var fe *foldertree.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, kind, fe.Kind)
}

func TestScenario1NestedCreateAndList(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	listing, err := tr.List("/a/")
	require.NoError(t, err)
	assert.Equal(t, "b", listing)

	listing, err = tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "a", listing)
}

func TestScenario2CreateTwiceThenRemoveTwice(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	assertErrKind(t, foldertree.Exists, tr.Create("/a/"))
	require.NoError(t, tr.Remove("/a/"))
	assertErrKind(t, foldertree.NotExist, tr.Remove("/a/"))
}

func TestScenario3RemoveNonEmptyThenEmpty(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	assertErrKind(t, foldertree.NotEmpty, tr.Remove("/a/"))
	require.NoError(t, tr.Remove("/a/b/"))
	require.NoError(t, tr.Remove("/a/"))
}

func TestScenario4MoveAcrossSubtrees(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/b/"))
	require.NoError(t, tr.Create("/a/x/"))
	require.NoError(t, tr.Move("/a/x/", "/b/y/"))

	listing, err := tr.List("/a/")
	require.NoError(t, err)
	assert.Equal(t, "", listing)

	listing, err = tr.List("/b/")
	require.NoError(t, err)
	assert.Equal(t, "y", listing)
}

func TestScenario5MoveIntoOwnDescendant(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	assertErrKind(t, foldertree.MoveIntoSelf, tr.Move("/a/", "/a/b/c/"))
}

func TestBoundaryBehaviors(t *testing.T) {
	tr := foldertree.New()

	listing, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "", listing)

	assertErrKind(t, foldertree.Busy, tr.Remove("/"))
	assertErrKind(t, foldertree.Exists, tr.Create("/"))
	assertErrKind(t, foldertree.Busy, tr.Move("/", "/a/"))

	require.NoError(t, tr.Create("/a/"))
	assertErrKind(t, foldertree.Exists, tr.Move("/a/", "/"))
	assertErrKind(t, foldertree.MoveIntoSelf, tr.Move("/a/", "/a/b/"))

	maxName := strings.Repeat("a", 255)
	require.NoError(t, tr.Create("/"+maxName+"/"))
	overName := strings.Repeat("a", 256)
	assertErrKind(t, foldertree.Invalid, tr.Create("/"+overName+"/"))
}

func TestInvalidPathsRejectedBeforeLocking(t *testing.T) {
	tr := foldertree.New()
	for _, p := range []string{"", "a/", "/A/", "/1a/", "//", "/a//b/"} {
		_, err := tr.List(p)
		assertErrKind(t, foldertree.Invalid, err)
		assertErrKind(t, foldertree.Invalid, tr.Create(p))
		assertErrKind(t, foldertree.Invalid, tr.Remove(p))
		assertErrKind(t, foldertree.Invalid, tr.Move(p, "/a/"))
		assertErrKind(t, foldertree.Invalid, tr.Move("/a/", p))
	}
}

func TestCreateRemoveRoundTrip(t *testing.T) {
	tr := foldertree.New()
	before, err := tr.List("/")
	require.NoError(t, err)

	require.NoError(t, tr.Create("/p/"))
	require.NoError(t, tr.Remove("/p/"))

	after, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMoveRoundTrip(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))

	require.NoError(t, tr.Move("/a/", "/b/"))
	require.NoError(t, tr.Move("/b/", "/a/"))

	listing, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "a", listing)
}

func TestMoveToSelfIsNoop(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Move("/a/", "/a/"))

	listing, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "a", listing)
}

func TestRepeatedCreateReturnsExists(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/p/"))
	assertErrKind(t, foldertree.Exists, tr.Create("/p/"))
	assertErrKind(t, foldertree.Exists, tr.Create("/p/"))
}

func TestInfo(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	info, err := tr.Info("/a/")
	require.NoError(t, err)
	assert.Equal(t, 1, info.ChildCount)
	assert.Equal(t, 1, info.Depth)

	info, err = tr.Info("/a/b/")
	require.NoError(t, err)
	assert.Equal(t, 0, info.ChildCount)
	assert.Equal(t, 2, info.Depth)

	_, err = tr.Info("/missing/")
	assertErrKind(t, foldertree.NotExist, err)
}

// TestConcurrentDisjointOperations exercises the claim in spec §5 that
// operations whose path chains are disjoint proceed independently: one
// goroutine per top-level folder, each hammering create/list/remove only
// within its own subtree, should never observe the other's folders and
// should never deadlock.
func TestConcurrentDisjointOperations(t *testing.T) {
	tr := foldertree.New()
	const branches = 8
	const iterations = 200

	var wg sync.WaitGroup
	for i := 0; i < branches; i++ {
		branch := "/" + string(rune('a'+i)) + "/"
		require.NoError(t, tr.Create(branch))

		wg.Add(1)
		go func(branch string) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				require.NoError(t, tr.Create(branch+"child/"))
				listing, err := tr.List(branch)
				require.NoError(t, err)
				assert.Equal(t, "child", listing)
				require.NoError(t, tr.Remove(branch+"child/"))
			}
		}(branch)
	}
	wg.Wait()

	for i := 0; i < branches; i++ {
		branch := "/" + string(rune('a'+i)) + "/"
		listing, err := tr.List(branch)
		require.NoError(t, err)
		assert.Equal(t, "", listing)
	}
}

// TestConcurrentMoveLinearizes runs two goroutines racing to move the
// same folder back and forth between two parents; once both have
// finished, List at the two parents must show the child named "x" in
// exactly one of them.
func TestConcurrentMoveLinearizes(t *testing.T) {
	tr := foldertree.New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/b/"))
	require.NoError(t, tr.Create("/a/x/"))

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = tr.Move("/a/x/", "/b/x/")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = tr.Move("/b/x/", "/a/x/")
		}
	}()
	wg.Wait()

	aListing, err := tr.List("/a/")
	require.NoError(t, err)
	bListing, err := tr.List("/b/")
	require.NoError(t, err)

	total := 0
	if aListing == "x" {
		total++
	}
	if bListing == "x" {
		total++
	}
	assert.Equal(t, 1, total, "folder x must exist in exactly one parent, got a=%q b=%q", aListing, bListing)
}
