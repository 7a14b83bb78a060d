package discovery

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes behind an image location.
//
// Implementations must honor the context and report the transport status
// code so callers can distinguish "reachable but missing" from network
// failure. A data: URI is decoded locally and reported as status 200.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (status int, body []byte, err error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc func(ctx context.Context, location string) (int, []byte, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, location string) (int, []byte, error) {
	return f(ctx, location)
}

// HTTPFetcher is the production Fetcher. Relative locations are resolved
// against BaseURL; absolute http(s) locations pass through untouched.
//
// Every request carries no-cache headers so that manifest edits show up
// on the next restart without fighting intermediate caches.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the given image directory URL.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the resource at location.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (int, []byte, error) {
	location = strings.TrimSpace(location)
	if strings.HasPrefix(location, "data:") {
		body, err := decodeDataURI(location)
		if err != nil {
			return 0, nil, fmt.Errorf("解码 data URI 失败: %w", err)
		}
		return http.StatusOK, body, nil
	}

	target, err := f.resolve(location)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("请求 %s 失败: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("读取响应失败: %w", err)
	}
	return resp.StatusCode, body, nil
}

// resolve joins a location with the base URL.
func (f *HTTPFetcher) resolve(location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location, nil
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("图片目录地址无效 %q: %w", f.BaseURL, err)
	}
	ref, err := url.Parse(strings.TrimPrefix(location, "./"))
	if err != nil {
		return "", fmt.Errorf("图片地址无效 %q: %w", location, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// decodeDataURI extracts the payload of a data: URI. Both base64 and
// percent-encoded payloads are supported.
func decodeDataURI(uri string) ([]byte, error) {
	rest := strings.TrimPrefix(uri, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return nil, fmt.Errorf("missing comma separator")
	}

	meta, payload := rest[:comma], rest[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(unescaped), nil
}
