// Package util holds small shared helpers for the extraction providers.
package util

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy function for extraction provider HTTP
// clients. Explicit proxy URLs take precedence; hosts matching an entry
// in the comma-separated noProxy list bypass the proxy. With no
// explicit configuration the standard environment variables apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassesProxy(req.URL.Host, skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	var out []string
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(strings.ToLower(entry))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// hostBypassesProxy matches a request host against noProxy entries. An
// entry matches the exact host or, with a leading dot, any subdomain.
func hostBypassesProxy(host string, skip []string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	for _, entry := range skip {
		if entry == "*" {
			return true
		}
		if strings.HasPrefix(entry, ".") {
			if strings.HasSuffix(host, entry) || host == strings.TrimPrefix(entry, ".") {
				return true
			}
			continue
		}
		if host == entry {
			return true
		}
	}
	return false
}
