package fetcher

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// validateURL checks that the URL is fetchable and, when denyPrivateIPs is
// set, that it does not resolve to a private or loopback address. This keeps
// the tool from being used as an SSRF proxy when exposed beyond localhost.
func validateURL(rawURL string, denyPrivateIPs bool) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: malformed URL: %v", entity.ErrFetch, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q (only http and https)", entity.ErrFetch, parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("%w: URL has no host", entity.ErrFetch)
	}

	if !denyPrivateIPs {
		return nil
	}

	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("%w: access to localhost denied", entity.ErrFetch)
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve host %q: %v", entity.ErrFetch, host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: host %q resolves to a private address", entity.ErrFetch, host)
		}
	}

	return nil
}

// isPrivateIP reports whether ip belongs to a loopback, private, or
// link-local range (IPv4 and IPv6).
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
