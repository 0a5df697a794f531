// Package ddragon fetches the champion catalog from a Data Dragon document.
package ddragon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/okian/lobby/internal/domain/catalog"
	"github.com/okian/lobby/pkg/logger"
	"github.com/okian/lobby/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 16 << 20
	dataField      = "data"
)

// Loader performs the one-shot catalog fetch.
type Loader struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds the whole fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoader creates a Loader for url.
func NewLoader(url string, opts ...Option) *Loader {
	l := &Loader{
		url:     url,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load issues one GET and returns the keys of the document's "data" object
// in document order. Every failure wraps catalog.ErrCatalogUnavailable.
func (l *Loader) Load(ctx context.Context) (catalog.Catalog, error) {
	start := time.Now()
	cat, err := l.load(ctx)
	metrics.RecordCatalogLoad(err == nil, float64(time.Since(start).Milliseconds()))
	if err != nil {
		if l.logger != nil {
			l.logger.Error(ctx, "catalog load failed", logger.String("url", l.url), logger.Error(err))
		}
		return catalog.Catalog{}, err
	}
	metrics.UpdateCatalogSize(cat.Len())
	if l.logger != nil {
		l.logger.Info(ctx, "catalog loaded",
			logger.String("url", l.url),
			logger.Int("champions", cat.Len()),
			logger.Duration("took", time.Since(start)),
		)
	}
	return cat, nil
}

func (l *Loader) load(ctx context.Context) (catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%w: build request: %w", catalog.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%w: %w", catalog.ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Catalog{}, fmt.Errorf("%w: unexpected status %s", catalog.ErrCatalogUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%w: read body: %w", catalog.ErrCatalogUnavailable, err)
	}
	return Parse(body)
}

// Parse extracts the ordered key set of the top-level "data" object.
func Parse(body []byte) (catalog.Catalog, error) {
	if !gjson.ValidBytes(body) {
		return catalog.Catalog{}, fmt.Errorf("%w: malformed document", catalog.ErrCatalogUnavailable)
	}
	data := gjson.GetBytes(body, dataField)
	if !data.IsObject() {
		return catalog.Catalog{}, fmt.Errorf("%w: %q is missing or not an object", catalog.ErrCatalogUnavailable, dataField)
	}

	var ids []string
	data.ForEach(func(key, _ gjson.Result) bool {
		ids = append(ids, key.String())
		return true
	})
	return catalog.New(ids)
}
