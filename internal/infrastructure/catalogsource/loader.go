package catalogsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/speedparts/storefront/internal/domain/catalog"
)

// maxCatalogBytes limits the catalog payload size to prevent memory
// exhaustion from a misbehaving source.
const maxCatalogBytes = 10 * 1024 * 1024

// LoadError reports that the catalog could not be fetched or parsed.
// Callers recover by continuing with an empty catalog; the error carries
// the source for the warning surfaced to the user.
type LoadError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load from %s failed: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches the product collection from an HTTP URL or a local file.
type Loader struct {
	source     string
	httpClient *http.Client
}

// NewLoader creates a loader for the given source. A source starting with
// http:// or https:// is fetched over the network; anything else is read
// as a local file path.
func NewLoader(source string, timeout time.Duration) *Loader {
	return &Loader{
		source: source,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load retrieves and parses the product collection. On any transport or
// parse failure it returns an empty product list together with a
// *LoadError; it never returns partial data.
func (l *Loader) Load(ctx context.Context) ([]catalog.Product, error) {
	raw, err := l.fetch(ctx)
	if err != nil {
		return []catalog.Product{}, &LoadError{Source: l.source, Err: err}
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return []catalog.Product{}, &LoadError{Source: l.source, Err: fmt.Errorf("invalid product JSON: %w", err)}
	}
	return products, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		return l.fetchHTTP(ctx)
	}
	return os.ReadFile(l.source)
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
}
