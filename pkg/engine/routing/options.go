package routing

import (
	"context"

	"github.com/lintang-b-s/roadrouter/pkg/util"
)

type queryOptions struct {
	ctx             context.Context
	maxSettledNodes int
}

// QueryOption bounds a single search.
type QueryOption func(*queryOptions)

// WithContext aborts the search with ErrSearchAborted once ctx is done.
func WithContext(ctx context.Context) QueryOption {
	return func(o *queryOptions) {
		o.ctx = ctx
	}
}

// WithMaxSettledNodes aborts the search with ErrSearchAborted after n nodes have been settled without
// reaching the target. n <= 0 means no cap.
func WithMaxSettledNodes(n int) QueryOption {
	return func(o *queryOptions) {
		o.maxSettledNodes = n
	}
}

func newQueryOptions(opts []QueryOption) queryOptions {
	o := queryOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// checkAbort is called once per frontier extraction.
func (o queryOptions) checkAbort(numSettledNodes int) error {
	if o.maxSettledNodes > 0 && numSettledNodes >= o.maxSettledNodes {
		return util.WrapErrorf(ErrSearchAborted, util.ErrInternalServerError,
			"settled %d nodes without reaching the target", numSettledNodes)
	}
	if o.ctx != nil && util.StopConcurrentOperation(o.ctx) {
		return util.WrapErrorf(ErrSearchAborted, o.ctx.Err(), "search stopped after settling %d nodes",
			numSettledNodes)
	}
	return nil
}
