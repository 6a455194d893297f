package blizzard

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// searchConcurrency bounds the page fan-out of SearchAll.
const searchConcurrency = 4

// Search invokes a search endpoint and decodes the paging envelope.
func (c *Client) Search(ctx context.Context, method string, params Params) (*SearchPage, error) {
	op, err := c.Operation(method)
	if err != nil {
		return nil, err
	}
	if !op.desc.AcceptsFilters {
		return nil, &ValidationError{Param: "method", Message: fmt.Sprintf("%s is not a search endpoint", method)}
	}

	var page SearchPage
	if err := c.execute(ctx, op.desc, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchAll fetches every page of a search and concatenates the
// results in page order. Pages after the first are fetched
// concurrently with a bounded fan-out; result order is still
// deterministic because pages are reassembled by index.
func (c *Client) SearchAll(ctx context.Context, method string, params Params) ([]SearchResult, error) {
	first := params.clone()
	first["_page"] = "1"

	page, err := c.Search(ctx, method, first)
	if err != nil {
		return nil, err
	}
	if page.PageCount <= 1 {
		return page.Results, nil
	}

	pages := make([][]SearchResult, page.PageCount)
	pages[0] = page.Results

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)

	var mu sync.Mutex
	for n := 2; n <= page.PageCount; n++ {
		n := n
		g.Go(func() error {
			p := params.clone()
			p["_page"] = strconv.Itoa(n)
			res, err := c.Search(ctx, method, p)
			if err != nil {
				return fmt.Errorf("page %d: %w", n, err)
			}
			mu.Lock()
			pages[n-1] = res.Results
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []SearchResult
	for _, res := range pages {
		all = append(all, res...)
	}

	c.logger.Debug().
		Str("method", method).
		Int("pages", page.PageCount).
		Int("results", len(all)).
		Msg("Fetched all search pages")

	return all, nil
}
