// Package registry implements the npm-protocol client unitypm uses to
// talk to Unity package registries.
package registry

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/rs/dnscache"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	dnsRefreshPeriod  = 5 * time.Minute
)

// newHTTPClient builds the transport stack: a pooled clean transport with
// a DNS-caching dialer, wrapped in retrying semantics for transient 5xx
// and 429 responses. Authoritative responses (200/404) are never retried.
func newHTTPClient(timeout time.Duration, maxRetries int) *http.Client {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(dnsRefreshPeriod)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		for _, ip := range ips {
			conn, dialErr := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if dialErr == nil {
				return conn, nil
			}
		}
		return nil, fmt.Errorf("failed to dial any resolved address for %s", host)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	retryClient.RetryMax = maxRetries
	retryClient.Logger = nil

	return retryClient.StandardClient()
}
