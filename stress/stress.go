package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	foldertree "github.com/agatazaleska/foldertree"
)

// Config controls a stress run.
type Config struct {
	// Workers is the number of concurrent goroutines issuing
	// operations.
	Workers int
	// OpsPerWorker is how many random operations each worker issues.
	OpsPerWorker int
	// WriteRatio is the fraction, in [0,1], of operations that are
	// mutating (create/remove/move) rather than list.
	WriteRatio float64
	// Seed seeds the per-worker random generators. Each worker gets a
	// distinct derived seed so runs are reproducible but workers don't
	// share a generator.
	Seed int64
	// Names is the pool of folder names workers pick from when
	// building random paths; a small pool maximizes contention.
	Names []string
	// Depth is the maximum path depth workers will address.
	Depth int
}

// DefaultConfig returns a Config matching spec §8 scenario 6's shape (32
// workers, 10^4 operations each), scaled down to something that finishes
// quickly in a test binary; callers doing a real stress run should raise
// Workers/OpsPerWorker.
func DefaultConfig() Config {
	return Config{
		Workers:      32,
		OpsPerWorker: 2000,
		WriteRatio:   0.5,
		Seed:         1,
		Names:        []string{"a", "b", "c", "d"},
		Depth:        3,
	}
}

// Report summarizes a completed run.
type Report struct {
	TotalOps    int
	ErrorCounts map[foldertree.Kind]int
}

// Run fans Config.Workers goroutines out over errgroup.Group, each issuing
// Config.OpsPerWorker randomized operations against tr, then walks tr to
// verify the structural invariants from spec §3 still hold. It returns an
// error (wrapped with a stack by github.com/pkg/errors) if any invariant
// is violated or any worker hits an unexpected (non-foldertree.Error)
// failure.
func Run(ctx context.Context, tr *foldertree.Tree, cfg Config) (*Report, error) {
	counts := make([]map[foldertree.Kind]int, cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		counts[w] = make(map[foldertree.Kind]int)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(cfg.Seed + int64(w)))
			for i := 0; i < cfg.OpsPerWorker; i++ {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if err := randomOp(tr, rng, cfg); err != nil {
					var fe *foldertree.Error
					if !errors.As(err, &fe) {
						return pkgerrors.Wrapf(err, "worker %d op %d: unexpected error", w, i)
					}
					counts[w][fe.Kind]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{ErrorCounts: make(map[foldertree.Kind]int)}
	for _, c := range counts {
		for k, n := range c {
			report.ErrorCounts[k] += n
		}
	}
	report.TotalOps += cfg.Workers * cfg.OpsPerWorker

	if err := CheckInvariants(tr); err != nil {
		return report, pkgerrors.Wrap(err, "post-run invariant check")
	}
	return report, nil
}

func randomPath(rng *rand.Rand, cfg Config) string {
	depth := 1 + rng.Intn(cfg.Depth)
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteByte('/')
		b.WriteString(cfg.Names[rng.Intn(len(cfg.Names))])
	}
	b.WriteByte('/')
	return b.String()
}

func randomOp(tr *foldertree.Tree, rng *rand.Rand, cfg Config) error {
	if rng.Float64() >= cfg.WriteRatio {
		_, err := tr.List(randomPath(rng, cfg))
		return err
	}
	switch rng.Intn(3) {
	case 0:
		return tr.Create(randomPath(rng, cfg))
	case 1:
		return tr.Remove(randomPath(rng, cfg))
	default:
		return tr.Move(randomPath(rng, cfg), randomPath(rng, cfg))
	}
}

// CheckInvariants walks tr from the root using only its public API and
// re-derives, for every reachable folder, that the listing produced by
// List at each ancestor is internally consistent: every name returned by
// a parent's List resolves via List/Info to a folder that itself exists
// and whose own accounting (child count) matches its own listing.
//
// This is the externally observable half of invariants 1 and 2 in spec
// §3 ("n.parent.children[name_of(n)] == n", "the graph is a rooted
// tree"): without reaching into node internals, a public-API caller can
// only confirm that the tree it sees forms one consistent hierarchy, not
// literally inspect parent pointers -- which is exactly the contract
// List/Info promise callers.
func CheckInvariants(tr *foldertree.Tree) error {
	return checkSubtree(tr, "/")
}

func checkSubtree(tr *foldertree.Tree, path string) error {
	listing, err := tr.List(path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}
	info, err := tr.Info(path)
	if err != nil {
		return fmt.Errorf("info %s: %w", path, err)
	}

	var names []string
	if listing != "" {
		names = strings.Split(listing, ",")
	}
	if info.ChildCount != len(names) {
		return fmt.Errorf("%s: info reports %d children but listing has %d", path, info.ChildCount, len(names))
	}

	for _, name := range names {
		if err := checkSubtree(tr, path+name+"/"); err != nil {
			return err
		}
	}
	return nil
}
