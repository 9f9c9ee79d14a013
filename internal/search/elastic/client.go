package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/retry"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var _ search.Backend = (*Client)(nil)

// StatusError is a non-2xx answer from the cluster.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elasticsearch status %d: %s", e.Code, e.Body)
}

func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusBadGateway ||
			se.Code == http.StatusServiceUnavailable ||
			se.Code == http.StatusGatewayTimeout
	}
	return retry.IsConnectionError(err)
}

// Client is the search backend over an elasticsearch cluster. The client's
// own retries are disabled; every call goes through the retry policy.
type Client struct {
	es    *elasticsearch.Client
	retry retry.Policy
}

func New(url string, policy retry.Policy) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{url},
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Client{es: es, retry: policy}, nil
}

// do runs call under the retry policy and hands a successful response to
// handle. A 404 maps to domain.ErrNotFound.
func (c *Client) do(ctx context.Context, call func() (*esapi.Response, error), handle func(io.Reader) error) error {
	return c.retry.Do(ctx, func() error {
		res, err := call()
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode == http.StatusNotFound {
			return domain.ErrNotFound
		}
		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			return &StatusError{Code: res.StatusCode, Body: string(body)}
		}
		if handle == nil {
			return nil
		}
		return handle(res.Body)
	}, isTransient)
}

type hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

func (c *Client) Get(ctx context.Context, index domain.Index, id string) (search.Document, error) {
	var h hit
	err := c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Get(index.String(), id, c.es.Get.WithContext(ctx))
	}, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&h)
	})
	if err != nil {
		return search.Document{}, fmt.Errorf("get %s/%s: %w", index, id, err)
	}
	return search.Document{ID: h.ID, Source: h.Source}, nil
}

func (c *Client) Search(ctx context.Context, index domain.Index, req *search.Request) ([]search.Document, error) {
	body, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	var res struct {
		Hits struct {
			Hits []hit `json:"hits"`
		} `json:"hits"`
	}
	err = c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(index.String()),
			c.es.Search.WithBody(bytes.NewReader(body)),
		)
	}, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&res)
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	docs := make([]search.Document, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		docs = append(docs, search.Document{ID: h.ID, Source: h.Source})
	}
	return docs, nil
}

// EnsureIndex creates index with its mappings unless it already exists.
func (c *Client) EnsureIndex(ctx context.Context, index domain.Index) error {
	err := c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Indices.Exists([]string{index.String()}, c.es.Indices.Exists.WithContext(ctx))
	}, nil)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return fmt.Errorf("check index %s: %w", index, err)
	}

	spec, err := IndexBody(index)
	if err != nil {
		return err
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	err = c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Indices.Create(index.String(),
			c.es.Indices.Create.WithContext(ctx),
			c.es.Indices.Create.WithBody(bytes.NewReader(body)),
		)
	}, nil)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}

// BulkBody renders docs as newline-delimited index actions.
func BulkBody(index domain.Index, docs []search.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		action := map[string]any{"index": map[string]string{"_index": index.String(), "_id": doc.ID}}
		if err := enc.Encode(action); err != nil {
			return nil, err
		}
		if err := json.Compact(&buf, doc.Source); err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (c *Client) Index(ctx context.Context, index domain.Index, docs []search.Document) error {
	if len(docs) == 0 {
		return nil
	}
	body, err := BulkBody(index, docs)
	if err != nil {
		return err
	}

	var res struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string          `json:"_id"`
			Error json.RawMessage `json:"error"`
		} `json:"items"`
	}
	err = c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Bulk(bytes.NewReader(body),
			c.es.Bulk.WithContext(ctx),
			c.es.Bulk.WithRefresh("true"),
		)
	}, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&res)
	})
	if err != nil {
		return fmt.Errorf("bulk index %s: %w", index, err)
	}
	if res.Errors {
		for _, item := range res.Items {
			for _, result := range item {
				if len(result.Error) > 0 {
					return fmt.Errorf("bulk index %s: document %s: %s", index, result.ID, result.Error)
				}
			}
		}
		return fmt.Errorf("bulk index %s: partial failure", index)
	}
	return nil
}

func (c *Client) Count(ctx context.Context, index domain.Index) (int, error) {
	var res struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Count(c.es.Count.WithContext(ctx), c.es.Count.WithIndex(index.String()))
	}, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&res)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", index, err)
	}
	return res.Count, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, func() (*esapi.Response, error) {
		return c.es.Ping(c.es.Ping.WithContext(ctx))
	}, nil)
}

func (c *Client) Close() error { return nil }
