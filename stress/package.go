// Package stress drives a concurrent invariant-checking workload against
// a foldertree.Tree: many goroutines issue randomized create, remove,
// list, and move operations against a shared tree, after which the whole
// tree is walked to re-check the structural invariants from spec §3/§8.
//
// The workload shape -- a fixed worker count, a randomized read/write
// mix, and a post-run correctness check -- follows the benchmarkLocking
// harness in dijkstracula-go-ilock's ilock_test.go (barrier-synchronized
// concurrent goroutines issuing randomized lock operations, then checking
// a monotonicity invariant on the shared state).
package stress
