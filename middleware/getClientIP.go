package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's address for rate limiting. Proxy headers
// take precedence over the socket address: X-Forwarded-For (first hop), then
// X-Real-IP, then RemoteAddr with the port stripped.
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		for _, hop := range strings.Split(xff, ",") {
			if ip := strings.TrimSpace(hop); ip != "" {
				return ip
			}
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
