package gateway

import (
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewCachingTransport wraps base with an HTTP cache honouring Cache-Control
// headers. Used for repeat fetches of profile photos and other static
// backend resources. An empty cacheDir selects an in-memory cache.
func NewCachingTransport(base http.RoundTripper, cacheDir string) http.RoundTripper {
	var transport *httpcache.Transport
	if cacheDir == "" {
		transport = httpcache.NewTransport(httpcache.NewMemoryCache())
	} else {
		transport = httpcache.NewTransport(diskcache.New(cacheDir))
	}
	transport.Transport = base
	return transport
}
