package util

import "golang.org/x/sync/errgroup"

// SafeSetLimit sets the limit of g, panicking on 0 since a zero limit blocks every Go call forever.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}
