package foldertree

import "github.com/agatazaleska/foldertree/telemetry/log"

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger attaches a log.Log to the tree. List, Create, Remove and Move
// log their call and return under TopicCall, structural mutations are
// logged under TopicTree, and failures of every operation, Info included,
// under TopicError. Info logs no call or return, and the tree emits
// nothing under TopicLock.
//
// The default, if WithLogger is never applied, is log.NoLog{}.
func WithLogger(l log.Log) Option {
	return func(t *Tree) {
		t.log = l
	}
}
