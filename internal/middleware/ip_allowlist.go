package middleware

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// IPAllowlist holds the networks allowed to call a route
type IPAllowlist struct {
	prefixes []netip.Prefix
}

// ParseIPAllowlist parses a comma separated list of IPs and CIDRs.
// "103.26.139.87, 103.26.139.0/24"
// An empty list allows every address.
func ParseIPAllowlist(list string) (*IPAllowlist, error) {
	a := &IPAllowlist{}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR %q: %w", entry, err)
			}
			a.prefixes = append(a.prefixes, p.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid IP %q: %w", entry, err)
		}
		a.prefixes = append(a.prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return a, nil
}

// Empty reports whether no restriction is configured
func (a *IPAllowlist) Empty() bool {
	return a == nil || len(a.prefixes) == 0
}

// Allows reports whether ip belongs to one of the configured networks
func (a *IPAllowlist) Allows(ip string) bool {
	if a.Empty() {
		return true
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range a.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// RestrictIPs rejects requests whose client IP is outside the allowlist.
// Used on the gateway notification endpoint.
func RestrictIPs(allowlist *IPAllowlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !allowlist.Allows(ip) {
			l := logger.WithRequestID(c.GetString("request_id"))
			l.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("request from unlisted address rejected")
			common.ErrorResponse(c, http.StatusForbidden, "Forbidden", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
