// Package postgrest reads tables from a hosted PostgREST API.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mcdev12/mockdraft/go/clients"
)

type Client struct {
	*clients.BaseClient
}

// NewClient creates a client for the project at baseURL, authenticating with apiKey
func NewClient(baseURL, apiKey string) *Client {
	client := &Client{
		BaseClient: clients.NewBaseClient(strings.TrimRight(baseURL, "/") + RestPath),
	}

	client.SetHeader(AcceptHeader, JSONContentType)
	if apiKey != "" {
		client.SetHeader(APIKeyHeader, apiKey)
		client.SetHeader(AuthorizationHeader, "Bearer "+apiKey)
	}

	return client
}

// Query is a PostgREST row filter
type Query struct {
	Select string
	Eq     map[string]string
	Order  string // e.g. "rank.asc"
	Limit  int
}

func (q Query) encode() string {
	v := url.Values{}
	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	v.Set("select", sel)
	for col, val := range q.Eq {
		v.Set(col, "eq."+val)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	return v.Encode()
}

// Select fetches rows from table and decodes them into out, which must be a pointer to a slice
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	body, err := c.Get(ctx, "/"+table+"?"+q.encode())
	if err != nil {
		return fmt.Errorf("failed to select from %s: %w", table, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s rows: %w", table, err)
	}
	return nil
}
