package routing

import "errors"

var (
	// ErrUnknownNode: a query references a node id that is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrMissingPosition: heuristic search reached a node without a geographic position.
	ErrMissingPosition = errors.New("node has no position")
	// ErrSearchAborted: the caller's settle cap or context stopped the search before it finished. it never
	// means that the target is unreachable.
	ErrSearchAborted = errors.New("search aborted")
	// ErrBrokenPredecessorChain: the predecessor links do not lead back to the source. this is a defect in
	// the search, not a "no path" outcome.
	ErrBrokenPredecessorChain = errors.New("broken predecessor chain")
)
