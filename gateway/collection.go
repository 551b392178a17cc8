package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/restaurant-console/catalog"
)

// Collection is the REST surface of one backend resource:
// GET/POST <endpoint>, GET/PUT/DELETE <endpoint>{id}/
type Collection[T catalog.Entity] struct {
	client   *Client
	endpoint string
}

func NewCollection[T catalog.Entity](client *Client, endpoint string) *Collection[T] {
	return &Collection[T]{client: client, endpoint: endpoint}
}

// List fetches one page. It satisfies listing.Source.
func (c *Collection[T]) List(ctx context.Context, page, pageSize int) ([]T, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var raw json.RawMessage
	if err := c.client.Get(ctx, c.endpoint+"?"+q.Encode(), &raw); err != nil {
		return nil, 0, err
	}
	p, err := DecodePage[T](raw, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", c.endpoint, err)
	}
	return p.Items, p.Total, nil
}

// Delete removes one record. It satisfies listing.Source.
func (c *Collection[T]) Delete(ctx context.Context, id catalog.ID) error {
	return c.client.Delete(ctx, c.itemPath(id))
}

// Fields returns the raw JSON fields of one record, used to prefill edit forms
func (c *Collection[T]) Fields(ctx context.Context, id catalog.ID) (map[string]any, error) {
	var fields map[string]any
	if err := c.client.Get(ctx, c.itemPath(id), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (c *Collection[T]) Create(ctx context.Context, payload map[string]any) error {
	return c.client.Post(ctx, c.endpoint, payload, nil)
}

func (c *Collection[T]) Update(ctx context.Context, id catalog.ID, payload map[string]any) error {
	return c.client.Put(ctx, c.itemPath(id), payload, nil)
}

func (c *Collection[T]) itemPath(id catalog.ID) string {
	return c.endpoint + url.PathEscape(string(id)) + "/"
}
