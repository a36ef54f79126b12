package api

import (
	"context"
	"net/url"
	"strconv"
)

// Values renders the filters as request parameters. The "all" sentinels and
// empty strings mean unconstrained and are left out entirely.
func (f ContentFilters) Values() url.Values {
	query := url.Values{}

	if f.Category != "" && f.Category != CategoryAll {
		query.Set("category", string(f.Category))
	}
	if f.Difficulty != "" && f.Difficulty != DifficultyAll {
		query.Set("difficulty", string(f.Difficulty))
	}
	if f.ContentType != "" && f.ContentType != ContentTypeAll {
		query.Set("content_type", string(f.ContentType))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.SortBy != "" {
		query.Set("sort_by", string(f.SortBy))
	}

	return query
}

// ListContent fetches one page of the content catalog. Page numbering starts
// at 1. An empty result page is a valid zero-match answer, not an error.
func (c *Client) ListContent(ctx context.Context, filters ContentFilters, page, pageSize int) (*ContentPage, error) {
	query := filters.Values()
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var result ContentPage
	if err := c.get(ctx, "/api/v1/education/content", query, &result); err != nil {
		return nil, err
	}

	if result.Results == nil {
		result.Results = []ContentSummary{}
	}

	return &result, nil
}

// GetContent fetches the full record for a single catalog entry.
func (c *Client) GetContent(ctx context.Context, id string) (*ContentDetail, error) {
	var detail ContentDetail
	if err := c.get(ctx, "/api/v1/education/content/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
