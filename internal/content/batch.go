package content

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds FetchAll when the caller passes zero.
const DefaultConcurrency = 4

// FetchAll runs one Fetch per request with at most limit in flight and
// returns results in request order. The first failure cancels the rest.
func (c *Client) FetchAll(ctx context.Context, reqs []Request, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	out := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := c.Fetch(gctx, req)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
