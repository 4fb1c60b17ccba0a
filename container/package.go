// Package container implements the string-keyed child map used by a
// folder node.
//
// Map is thread-compatible, not thread-safe: the caller is responsible for
// any synchronization. Within this module that synchronization is the
// enclosing node's room.
package container
