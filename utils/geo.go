package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// GeoLookup resolves an IP address to a country code through an
// external HTTP service. Failures are the caller's to swallow; geo
// data on analytics events is strictly best-effort.
type GeoLookup interface {
	CountryCode(ip string) (string, error)
}

// HTTPGeoLookup queries a line-format IP API (the URL carries one %s
// for the address).
type HTTPGeoLookup struct {
	URL     string
	Timeout time.Duration
}

func NewGeoLookup(url string) *HTTPGeoLookup {
	return &HTTPGeoLookup{URL: url, Timeout: 2 * time.Second}
}

func (g *HTTPGeoLookup) CountryCode(ip string) (string, error) {
	if ip == "" || ip == "127.0.0.1" || ip == "::1" {
		return "", fmt.Errorf("non-routable address")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf(g.URL, ip))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := fasthttp.DoTimeout(req, resp, g.Timeout); err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("geo lookup: status %d", resp.StatusCode())
	}

	code := strings.TrimSpace(string(resp.Body()))
	if len(code) != 2 {
		return "", fmt.Errorf("geo lookup: unexpected body %q", code)
	}
	return strings.ToUpper(code), nil
}
