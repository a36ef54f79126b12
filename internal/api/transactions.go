package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListTransactions fetches one page of the member's ledger, newest first.
// Passing an empty txType returns all movement types.
func (c *Client) ListTransactions(ctx context.Context, txType TransactionType, page, pageSize int) (*TransactionPage, error) {
	query := url.Values{}
	if txType != "" {
		query.Set("type", string(txType))
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var result TransactionPage
	if err := c.get(ctx, "/api/v1/transactions", query, &result); err != nil {
		return nil, err
	}

	if result.Results == nil {
		result.Results = []Transaction{}
	}

	return &result, nil
}
