package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aribt/hackathon-cms/shared/domain"
)

// Resource names one backend collection: the path it lives under and the
// cache key its data is stored and invalidated under.
type Resource[T any] struct {
	Key      string
	Endpoint string
}

func (c *APIClient) List(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, request{method: http.MethodGet, path: "/" + endpoint, resource: endpoint})
}

func (c *APIClient) Get(ctx context.Context, endpoint string, id domain.ID) (json.RawMessage, error) {
	return c.do(ctx, request{method: http.MethodGet, path: itemPath(endpoint, id), resource: endpoint})
}

// Create POSTs payload; see encodePayload for how it is put on the wire.
func (c *APIClient) Create(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, "/"+endpoint, endpoint, payload)
}

func (c *APIClient) Update(ctx context.Context, endpoint string, id domain.ID, payload any) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPatch, itemPath(endpoint, id), endpoint, payload)
}

func (c *APIClient) Remove(ctx context.Context, endpoint string, id domain.ID) (json.RawMessage, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: itemPath(endpoint, id), resource: endpoint})
}

func (c *APIClient) send(ctx context.Context, method, path, resource string, payload any) (json.RawMessage, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		// nothing went out, so the transport has not reported it
		c.notifier.Error(err.Error())
		return nil, err
	}
	return c.do(ctx, request{method: method, path: path, resource: resource, body: body, contentType: contentType})
}

func itemPath(endpoint string, id domain.ID) string {
	return "/" + endpoint + "/" + url.PathEscape(id.String())
}

// ListOf fetches r and decodes it into records.
func ListOf[T any](ctx context.Context, c *APIClient, r Resource[T]) ([]T, error) {
	raw, err := c.List(ctx, r.Endpoint)
	if err != nil {
		return nil, err
	}
	items, err := DecodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s response: %w", r.Key, err)
	}
	return items, nil
}

func GetOf[T any](ctx context.Context, c *APIClient, r Resource[T], id domain.ID) (T, error) {
	raw, err := c.Get(ctx, r.Endpoint, id)
	if err != nil {
		var zero T
		return zero, err
	}
	item, err := DecodeOne[T](raw)
	if err != nil {
		return item, fmt.Errorf("cannot decode %s response: %w", r.Key, err)
	}
	return item, nil
}

// DecodeList accepts an array, a single object (as a one-element list) or
// null. The result is never nil.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, err
		}
		return []T{item}, nil
	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %.20q", trimmed)
	}
}

// DecodeOne accepts a single object or an array, taking its first element.
// An empty array or null decodes to the zero value.
func DecodeOne[T any](raw json.RawMessage) (T, error) {
	var zero T
	items, err := DecodeList[T](raw)
	if err != nil || len(items) == 0 {
		return zero, err
	}
	return items[0], nil
}
